// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse is returned after a successful sign-in.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      int64     `json:"user_id"`
	Login       string    `json:"login"`
	FullName    string    `json:"full_name"`
	Role        Role      `json:"user_type"`
}

// RefreshRequest is the body of POST /api/auth/refresh.
type RefreshRequest struct {
	Token string `json:"token"`
}

// RefreshResponse carries a re-issued token.
type RefreshResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ForbiddenResponse is returned when the caller's role is not allowed.
type ForbiddenResponse struct {
	Error         string `json:"error"`
	RequiredRoles []Role `json:"required_roles,omitempty"`
	UserRole      Role   `json:"user_role,omitempty"`
}

// DataResponse wraps list results.
type DataResponse[T any] struct {
	Data []T `json:"data"`
}

// UserUpdatedResponse is returned by PUT /api/users/{id}.
type UserUpdatedResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

// UserDeletedResponse is returned by DELETE /api/users/{id}.
type UserDeletedResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

// RequestChangedResponse is returned after a repair request is created or
// updated.
type RequestChangedResponse struct {
	Message   string `json:"message"`
	RequestID int64  `json:"request_id"`
	Status    Status `json:"request_status"`
}

// RequestDeletedResponse is returned by DELETE /api/requests/{id}.
type RequestDeletedResponse struct {
	Message   string `json:"message"`
	RequestID int64  `json:"request_id"`
}

// CompletedCountResponse is returned by GET /api/statistics/completed-count.
type CompletedCountResponse struct {
	CompletedRequestsCount int64 `json:"completed_requests_count"`
}

// AverageTimeResponse is returned by GET /api/statistics/average-time.
type AverageTimeResponse struct {
	AvgCompletionDays int64 `json:"avg_completion_days"`
}

// FeedbackResponse points clients to the customer feedback form.
type FeedbackResponse struct {
	FormURL   string `json:"form_url"`
	QRCodeURL string `json:"qr_code_url"`
}

// HealthResponse is returned by GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
