// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "math"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100

	// MaxPage keeps (page-1)*limit within int for any accepted limit.
	MaxPage = math.MaxInt / MaxPageLimit
)

// Pagination describes the page returned by a list operation.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination computes the page count for total rows split by limit.
func NewPagination(page, limit int, total int64) Pagination {
	var pages int64
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// RequestPage is one page of repair requests.
type RequestPage struct {
	Data       []RepairRequest `json:"data"`
	Pagination Pagination      `json:"pagination"`
}
