// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// EventType names a repair request lifecycle event.
type EventType string

const (
	EventRequestCreated EventType = "request.created"
	EventRequestUpdated EventType = "request.updated"
	EventRequestDeleted EventType = "request.deleted"
)

// RequestEvent is published after a repair request changes.
type RequestEvent struct {
	Type       EventType `json:"type"`
	RequestID  int64     `json:"request_id"`
	ClientID   int64     `json:"client_id"`
	MasterID   *int64    `json:"master_id,omitempty"`
	OldStatus  Status    `json:"old_status,omitempty"`
	NewStatus  Status    `json:"new_status,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
