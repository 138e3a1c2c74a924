// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestFilter_Offset(t *testing.T) {
	tests := []struct {
		name   string
		filter RequestFilter
		want   int
	}{
		{"first page", RequestFilter{Page: 1, Limit: 10}, 0},
		{"third page", RequestFilter{Page: 3, Limit: 25}, 50},
		{"last accepted page", RequestFilter{Page: MaxPage, Limit: MaxPageLimit}, (MaxPage - 1) * MaxPageLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Offset()
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
		})
	}
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, Pagination{Page: 2, Limit: 10, Total: 21, Pages: 3}, NewPagination(2, 10, 21))
	assert.Equal(t, Pagination{Page: 1, Limit: 10, Total: 0, Pages: 0}, NewPagination(1, 10, 0))
}
