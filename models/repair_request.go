// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RepairRequest is a customer's appliance repair job.
type RepairRequest struct {
	// RequestID is the system-assigned identifier.
	RequestID int64 `json:"request_id" db:"request_id"`

	// StartDate is the server date on which the request was registered.
	StartDate Date `json:"start_date" db:"start_date"`

	// EquipmentType is the kind of appliance, e.g. "Refrigerator".
	EquipmentType string `json:"climate_tech_type" db:"climate_tech_type"`

	// EquipmentModel is the manufacturer model designation.
	EquipmentModel string `json:"climate_tech_model" db:"climate_tech_model"`

	ProblemDescription string `json:"problem_description" db:"problem_description"`

	// Status is the current workflow state.
	Status Status `json:"request_status" db:"request_status"`

	// CompletionDate is set when the work is finished. When present it is
	// never before StartDate.
	CompletionDate *Date `json:"completion_date" db:"completion_date"`

	// RepairParts notes the replacement parts used or awaited.
	RepairParts *string `json:"repair_parts" db:"repair_parts"`

	// MasterID references the assigned specialist, if any.
	MasterID *int64 `json:"master_id" db:"master_id"`

	// ClientID references the owning client.
	ClientID int64 `json:"client_id" db:"client_id"`
}

// CreateRequestInput carries the fields accepted on registration. Status and
// start date are always assigned by the server.
type CreateRequestInput struct {
	EquipmentType      string `json:"climate_tech_type"`
	EquipmentModel     string `json:"climate_tech_model"`
	ProblemDescription string `json:"problem_description"`
	ClientID           int64  `json:"client_id"`
}

// UpdateRequestInput is a partial update of a repair request. An explicit
// null clears the specialist, the parts note or the completion date.
type UpdateRequestInput struct {
	Status         Optional[string] `json:"request_status"`
	MasterID       Optional[int64]  `json:"master_id"`
	RepairParts    Optional[string] `json:"repair_parts"`
	CompletionDate Optional[Date]   `json:"completion_date"`
}

// IsEmpty reports whether no field was supplied.
func (in UpdateRequestInput) IsEmpty() bool {
	return !in.Status.Set && !in.MasterID.Set && !in.RepairParts.Set && !in.CompletionDate.Set
}

// RequestFilter selects a page of repair requests.
type RequestFilter struct {
	// ClientID restricts the result to one client's requests when non-nil.
	ClientID *int64

	// Status restricts the result to one workflow state when non-nil.
	Status *Status

	// RequestID restricts the result to a single id when non-nil.
	RequestID *int64

	Page  int
	Limit int
}

// Offset returns the number of rows skipped before the requested page.
func (f RequestFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// RequestUpdate is the validated change set handed to the store. Fields that
// are not Set are not written; Null clears the column.
type RequestUpdate struct {
	Status         *Status
	MasterID       Optional[int64]
	RepairParts    Optional[string]
	CompletionDate Optional[Date]
}

// IsEmpty reports whether the change set touches no column.
func (u RequestUpdate) IsEmpty() bool {
	return u.Status == nil && !u.MasterID.Set && !u.RepairParts.Set && !u.CompletionDate.Set
}

// RequestQuery is the raw list query of GET /requests. Page and Limit are
// normalized by the service; a non-numeric Search is ignored.
type RequestQuery struct {
	Page   int
	Limit  int
	Status string
	Search string
}
