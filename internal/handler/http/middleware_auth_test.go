// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/service"
	"github.com/MKhiriev/go-repair-desk/internal/utils"
	"github.com/MKhiriev/go-repair-desk/models"
)

// ---- Helpers ----

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	return r.WithContext(logger.Nop().WithContext(r.Context()))
}

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	middleware := h.auth(next)
	req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/test", nil))
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)
	return rr
}

// ---- getTokenFromAuthHeader ----

func TestGetTokenFromAuthHeader_TableTest(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{name: "valid Bearer token", header: "Bearer my-jwt-token", wantToken: "my-jwt-token"},
		{name: "lower-case scheme", header: "bearer my-jwt-token", wantToken: "my-jwt-token"},
		{name: "surrounding spaces", header: "  Bearer   my-jwt-token  ", wantToken: "my-jwt-token"},
		{name: "no token part", header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{name: "other scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrInvalidAuthorizationHeader},
		{name: "empty token", header: "Bearer ", wantErr: ErrInvalidAuthorizationHeader},
		{name: "single character token", header: "Bearer x", wantToken: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

// ---- auth middleware ----

func TestAuth_RejectsRequests(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		parseErr  error
		wantError string
	}{
		{
			name:      "missing header",
			wantError: ErrEmptyAuthorizationHeader.Error(),
		},
		{
			name:      "malformed header",
			header:    "Token abc",
			wantError: ErrInvalidAuthorizationHeader.Error(),
		},
		{
			name:      "expired token",
			header:    "Bearer expired",
			parseErr:  service.ErrTokenIsExpired,
			wantError: service.ErrTokenIsExpired.Error(),
		},
		{
			name:      "invalid token",
			header:    "Bearer forged",
			parseErr:  errors.Join(service.ErrTokenIsInvalid, errors.New("signature is invalid")),
			wantError: service.ErrTokenIsInvalid.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			if tt.parseErr != nil {
				m.auth.EXPECT().ParseToken(gomock.Any(), gomock.Any()).Return(models.Token{}, tt.parseErr)
			}

			nextCalled := false
			rr := executeAuth(h, tt.header, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				nextCalled = true
			}))

			assert.False(t, nextCalled)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, tt.wantError, gjson.Get(rr.Body.String(), "error").String())
		})
	}
}

func TestAuth_RejectsTokenWithoutSubject(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.EXPECT().ParseToken(gomock.Any(), "no-sub").Return(models.Token{}, nil)

	rr := executeAuth(h, "Bearer no-sub", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next must not be called")
	}))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAuth_StoresCallerInContext(t *testing.T) {
	h, m := newTestHandler(t)
	token := m.expectAuth(specialistCaller)

	var got models.Caller
	rr := executeAuth(h, "Bearer "+token, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, ok := utils.GetCallerFromContext(r.Context())
		require.True(t, ok)
		got = caller
		w.WriteHeader(http.StatusNoContent)
	}))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, specialistCaller, got)
}

// ---- requireRoles ----

func TestRequireRoles(t *testing.T) {
	tests := []struct {
		name       string
		caller     *models.Caller
		roles      []models.Role
		wantStatus int
		wantNext   bool
	}{
		{
			name:       "allowed role passes",
			caller:     &managerCaller,
			roles:      service.UserAdminRoles,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "one of several roles passes",
			caller:     &specialistCaller,
			roles:      service.RequestUpdateRoles,
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
		{
			name:       "other role is forbidden",
			caller:     &operatorCaller,
			roles:      service.RequestUpdateRoles,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no caller is unauthenticated",
			roles:      service.UserAdminRoles,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)

			req := injectNopLogger(httptest.NewRequest(http.MethodGet, "/test", nil))
			if tt.caller != nil {
				claims := tokenFor(*tt.caller).Claims
				req = req.WithContext(utils.WithClaims(req.Context(), &claims))
			}

			nextCalled := false
			rr := httptest.NewRecorder()
			h.requireRoles(tt.roles...)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				nextCalled = true
			})).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantNext, nextCalled)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestRequireRoles_ForbiddenBody(t *testing.T) {
	h, m := newTestHandler(t)
	token := m.expectAuth(operatorCaller)

	rr := serve(h, http.MethodDelete, "/api/requests/5", "", token)

	require.Equal(t, http.StatusForbidden, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, gjson.Get(body, "error").String(), service.ErrForbidden.Error())
	assert.Equal(t, string(models.RoleOperator), gjson.Get(body, "user_role").String())
	assert.Equal(t, string(models.RoleManager), gjson.Get(body, "required_roles.0").String())
}
