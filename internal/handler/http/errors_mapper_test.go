// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/MKhiriev/go-repair-desk/internal/adapter"
	"github.com/MKhiriev/go-repair-desk/internal/service"
	"github.com/MKhiriev/go-repair-desk/internal/store"
	"github.com/MKhiriev/go-repair-desk/models"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid input", fmt.Errorf("%w: phone cannot be empty", service.ErrInvalidInput), http.StatusBadRequest},
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired token", service.ErrTokenIsExpired, http.StatusUnauthorized},
		{"forbidden role", &service.ForbiddenError{Required: []models.Role{models.RoleManager}}, http.StatusForbidden},
		{"self delete", service.ErrSelfDeleteForbidden, http.StatusBadRequest},
		{"illegal transition", fmt.Errorf("%w: a -> b", service.ErrIllegalStatusTransition), http.StatusConflict},
		{"duplicate login", fmt.Errorf("create: %w", store.ErrLoginAlreadyExists), http.StatusConflict},
		{"referenced user", store.ErrUserIsReferenced, http.StatusConflict},
		{"missing request", fmt.Errorf("get request: %w", store.ErrRequestNotFound), http.StatusNotFound},
		{"missing reference", store.ErrReferenceNotFound, http.StatusBadRequest},
		{"query failure", fmt.Errorf("%w: boom", store.ErrExecutingQuery), http.StatusInternalServerError},
		{"QR upstream", adapter.ErrBadGateway, http.StatusBadGateway},
		{"unknown", errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := statusFromError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestWriteError_Messages(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{
			name:        "detail of invalid input is shown",
			err:         fmt.Errorf("%w: phone cannot be empty", service.ErrInvalidInput),
			wantMessage: "invalid input: phone cannot be empty",
		},
		{
			name:        "wrapping context of not found is hidden",
			err:         fmt.Errorf("update user: %w", store.ErrUserNotFound),
			wantMessage: store.ErrUserNotFound.Error(),
		},
		{
			name:        "internal errors are not described",
			err:         fmt.Errorf("%w: pq: password authentication failed", store.ErrExecutingQuery),
			wantMessage: internalErrorMessage,
		},
		{
			name:        "ownership reason is shown",
			err:         &service.ForbiddenError{Actual: models.RoleClient, Reason: "access denied"},
			wantMessage: "access denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/", nil))

			writeError(rr, req, tt.err)

			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantMessage, gjson.Get(rr.Body.String(), "error").String())
		})
	}
}
