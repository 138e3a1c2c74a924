// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateRequestInput_Presence(t *testing.T) {
	var in UpdateRequestInput
	require.NoError(t, json.Unmarshal([]byte(`{"master_id": null, "repair_parts": "", "completion_date": "2024-03-05"}`), &in))

	assert.False(t, in.Status.Set)

	assert.True(t, in.MasterID.Set)
	assert.True(t, in.MasterID.Null)
	assert.Nil(t, in.MasterID.Ptr())

	assert.True(t, in.RepairParts.HasValue())
	assert.Equal(t, "", in.RepairParts.Value)

	require.True(t, in.CompletionDate.HasValue())
	assert.Equal(t, "2024-03-05", in.CompletionDate.Value.String())
	assert.False(t, in.IsEmpty())
}

func TestUpdateRequestInput_Empty(t *testing.T) {
	var in UpdateRequestInput
	require.NoError(t, json.Unmarshal([]byte(`{}`), &in))
	assert.True(t, in.IsEmpty())
}

func TestDate_JSONAndScan(t *testing.T) {
	d := NewDate(time.Date(2024, 1, 31, 23, 15, 0, 0, time.UTC))

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2024-01-31"`, string(b))

	var scanned Date
	require.NoError(t, scanned.Scan("2024-02-10 00:00:00+00:00"))
	assert.Equal(t, 10, scanned.DaysSince(d))

	require.NoError(t, scanned.Scan(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, scanned.DaysSince(d))

	var bad Date
	assert.Error(t, json.Unmarshal([]byte(`"31/01/2024"`), &bad))
}

func TestNewPagination_Pages(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, Limit: 10, Total: 0, Pages: 0}, NewPagination(1, 10, 0))
	assert.Equal(t, int64(3), NewPagination(2, 10, 21).Pages)
	assert.Equal(t, int64(2), NewPagination(1, 10, 20).Pages)
}
