// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EquipmentTypeCount is the number of requests registered for one kind of
// appliance.
type EquipmentTypeCount struct {
	EquipmentType string `json:"equipment_type" db:"equipment_type"`
	TotalRequests int64  `json:"total_requests" db:"total_requests"`
}

// SpecialistWorkload is the number of requests assigned to one specialist.
type SpecialistWorkload struct {
	SpecialistID   int64  `json:"specialist_id" db:"specialist_id"`
	SpecialistName string `json:"specialist_name" db:"specialist_name"`
	TotalAssigned  int64  `json:"total_assigned" db:"total_assigned"`
}

// StatusCount is the number of requests currently in one workflow state.
type StatusCount struct {
	Status        Status `json:"request_status" db:"request_status"`
	TotalRequests int64  `json:"total_requests" db:"total_requests"`
}

// CompletionSpan is the start and completion day of a finished request,
// used to compute average turnaround.
type CompletionSpan struct {
	StartDate      Date `db:"start_date"`
	CompletionDate Date `db:"completion_date"`
}
