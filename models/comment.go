// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Comment is an immutable note left by a staff member on a repair request.
type Comment struct {
	CommentID int64     `json:"comment_id" db:"comment_id"`
	Message   string    `json:"message" db:"message"`
	MasterID  int64     `json:"master_id" db:"master_id"`
	RequestID int64     `json:"request_id" db:"request_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateCommentInput carries a new comment. The author is always the caller.
type CreateCommentInput struct {
	Message   string `json:"message"`
	RequestID int64  `json:"request_id"`
}
