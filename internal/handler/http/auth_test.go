// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-repair-desk/internal/ratelimit"
	"github.com/MKhiriev/go-repair-desk/internal/service"
	"github.com/MKhiriev/go-repair-desk/models"
)

func TestLogin(t *testing.T) {
	alice := models.User{UserID: 10, Login: "alice", FullName: "Alice Smith", Role: models.RoleClient}

	tests := []struct {
		name       string
		body       string
		setup      func(m *serviceMocks)
		wantStatus int
		check      func(t *testing.T, body string)
	}{
		{
			name: "valid credentials",
			body: `{"login":"alice","password":"secret1"}`,
			setup: func(m *serviceMocks) {
				m.auth.EXPECT().Login(gomock.Any(), "alice", "secret1").Return(alice, tokenFor(clientCaller), nil)
			},
			wantStatus: http.StatusOK,
			check: func(t *testing.T, body string) {
				assert.Equal(t, "token-10", gjson.Get(body, "access_token").String())
				assert.Equal(t, int64(10), gjson.Get(body, "user_id").Int())
				assert.Equal(t, "alice", gjson.Get(body, "login").String())
				assert.Equal(t, "Alice Smith", gjson.Get(body, "full_name").String())
				assert.Equal(t, string(models.RoleClient), gjson.Get(body, "user_type").String())
				expiresAt, err := time.Parse(time.RFC3339, gjson.Get(body, "expires_at").String())
				require.NoError(t, err)
				assert.True(t, expiresAt.After(time.Now()))
			},
		},
		{
			name: "wrong password",
			body: `{"login":"alice","password":"nope"}`,
			setup: func(m *serviceMocks) {
				m.auth.EXPECT().Login(gomock.Any(), "alice", "nope").Return(models.User{}, models.Token{}, service.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
			check: func(t *testing.T, body string) {
				assert.Equal(t, service.ErrInvalidCredentials.Error(), gjson.Get(body, "error").String())
			},
		},
		{
			name: "blank fields",
			body: `{"login":"","password":""}`,
			setup: func(m *serviceMocks) {
				m.auth.EXPECT().Login(gomock.Any(), "", "").
					Return(models.User{}, models.Token{}, errors.Join(service.ErrInvalidInput, errors.New("login and password are required")))
			},
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body string) {
				assert.Contains(t, gjson.Get(body, "error").String(), "login and password are required")
			},
		},
		{
			name:       "malformed body",
			body:       `{"login":`,
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body string) {
				assert.Contains(t, gjson.Get(body, "error").String(), ErrInvalidJSON.Error())
			},
		},
		{
			name:       "empty body",
			wantStatus: http.StatusBadRequest,
			check: func(t *testing.T, body string) {
				assert.Equal(t, ErrEmptyBody.Error(), gjson.Get(body, "error").String())
			},
		},
		{
			name: "store failure is not described",
			body: `{"login":"alice","password":"secret1"}`,
			setup: func(m *serviceMocks) {
				m.auth.EXPECT().Login(gomock.Any(), "alice", "secret1").Return(models.User{}, models.Token{}, errors.New("connection refused"))
			},
			wantStatus: http.StatusInternalServerError,
			check: func(t *testing.T, body string) {
				assert.Equal(t, internalErrorMessage, gjson.Get(body, "error").String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			if tt.setup != nil {
				tt.setup(m)
			}

			rr := serve(h, http.MethodPost, "/api/auth/login", tt.body, "")

			assert.Equal(t, tt.wantStatus, rr.Code)
			tt.check(t, rr.Body.String())
		})
	}
}

func TestRefresh(t *testing.T) {
	refreshed := tokenFor(specialistCaller)

	t.Run("token from body", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.auth.EXPECT().RefreshToken(gomock.Any(), "old-token").Return(refreshed, nil)

		rr := serve(h, http.MethodPost, "/api/auth/refresh", `{"token":"old-token"}`, "")

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, refreshed.SignedString, gjson.Get(rr.Body.String(), "access_token").String())
		assert.True(t, gjson.Get(rr.Body.String(), "expires_at").Exists())
	})

	t.Run("token from header when body is empty", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.auth.EXPECT().RefreshToken(gomock.Any(), "header-token").Return(refreshed, nil)

		rr := serve(h, http.MethodPost, "/api/auth/refresh", "", "header-token")

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		h, m := newTestHandler(t)
		m.auth.EXPECT().RefreshToken(gomock.Any(), "stale").Return(models.Token{}, service.ErrTokenIsExpired)

		rr := serve(h, http.MethodPost, "/api/auth/refresh", `{"token":"stale"}`, "")

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, service.ErrTokenIsExpired.Error(), gjson.Get(rr.Body.String(), "error").String())
	})

	t.Run("no token anywhere", func(t *testing.T) {
		h, _ := newTestHandler(t)

		rr := serve(h, http.MethodPost, "/api/auth/refresh", "", "")

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLogout(t *testing.T) {
	h, _ := newTestHandler(t)

	rr := serve(h, http.MethodPost, "/api/auth/logout", "", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Logout successful", gjson.Get(rr.Body.String(), "message").String())
}

// ---- login rate limiting ----

type stubLimiter struct {
	allowed    bool
	retryAfter time.Duration
	err        error
	keys       []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	s.keys = append(s.keys, key)
	return s.allowed, s.retryAfter, s.err
}

func TestLogin_RateLimited(t *testing.T) {
	h, _ := newTestHandler(t)
	limiter := &stubLimiter{allowed: false, retryAfter: 1500 * time.Millisecond}
	h.limiter = limiter

	rr := serve(h, http.MethodPost, "/api/auth/login", `{"login":"alice","password":"secret1"}`, "")

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "2", rr.Header().Get("Retry-After"))
	assert.Equal(t, tooManyRequestsMessage, gjson.Get(rr.Body.String(), "error").String())
	require.Len(t, limiter.keys, 1)
	assert.Equal(t, "192.0.2.1", limiter.keys[0])
}

func TestLogin_RateLimiterFailureLetsRequestThrough(t *testing.T) {
	h, m := newTestHandler(t)
	h.limiter = &stubLimiter{err: errors.New("redis: connection refused")}
	m.auth.EXPECT().Login(gomock.Any(), "alice", "secret1").Return(models.User{UserID: 10}, tokenFor(clientCaller), nil)

	rr := serve(h, http.MethodPost, "/api/auth/login", `{"login":"alice","password":"secret1"}`, "")

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestLogin_RateLimitKey(t *testing.T) {
	tests := []struct {
		name              string
		trustProxyHeaders bool
		wantKey           string
	}{
		{name: "socket address by default", trustProxyHeaders: false, wantKey: "192.0.2.1"},
		{name: "forwarded address behind a trusted proxy", trustProxyHeaders: true, wantKey: "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandler(t)
			limiter := &stubLimiter{allowed: true}
			h.limiter = limiter
			h.trustProxyHeaders = tt.trustProxyHeaders
			m.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).Return(models.User{}, models.Token{}, service.ErrInvalidCredentials)

			req := newJSONRequest(http.MethodPost, "/api/auth/login", `{"login":"a","password":"b"}`)
			req.Header.Set("X-Forwarded-For", "203.0.113.7")
			rr := serveRequest(h, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, []string{tt.wantKey}, limiter.keys)
		})
	}
}

func TestLogin_RotatingForwardedHeaderIsStillThrottled(t *testing.T) {
	h, m := newTestHandler(t)
	h.limiter = ratelimit.NewMemoryLimiter(2, time.Minute)
	m.auth.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.User{}, models.Token{}, service.ErrInvalidCredentials).
		Times(2)

	router := h.Init()
	throttled := 0
	for i := range 20 {
		req := newJSONRequest(http.MethodPost, "/api/auth/login", `{"login":"a","password":"b"}`)
		req.RemoteAddr = "198.51.100.9:40000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code == http.StatusTooManyRequests {
			throttled++
		}
	}

	assert.Equal(t, 18, throttled)
}

func TestRefresh_IsNotRateLimited(t *testing.T) {
	h, m := newTestHandler(t)
	limiter := &stubLimiter{allowed: false}
	h.limiter = limiter
	m.auth.EXPECT().RefreshToken(gomock.Any(), "old").Return(tokenFor(clientCaller), nil)

	rr := serve(h, http.MethodPost, "/api/auth/refresh", `{"token":"old"}`, "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, limiter.keys)
}
