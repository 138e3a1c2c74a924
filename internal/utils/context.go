// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password
// hashing, HTTP response writing, trace id generation, and JWT token
// generation and validation.
package utils

import (
	"context"

	"github.com/MKhiriev/go-repair-desk/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ClaimsCtxKey is the key under which the auth middleware stores the
// verified token claims of the caller.
var ClaimsCtxKey = contextKey("claims")

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *models.Claims) context.Context {
	return context.WithValue(ctx, ClaimsCtxKey, claims)
}

// GetClaimsFromContext retrieves the verified token claims from the context.
//
// Returns ok == false when no claims were stored or the value has an
// unexpected type.
func GetClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(*models.Claims)
	return claims, ok && claims != nil
}

// GetCallerFromContext converts the claims stored in ctx into a Caller.
func GetCallerFromContext(ctx context.Context) (models.Caller, bool) {
	claims, ok := GetClaimsFromContext(ctx)
	if !ok {
		return models.Caller{}, false
	}

	caller, err := models.CallerFromClaims(claims)
	if err != nil {
		return models.Caller{}, false
	}

	return caller, true
}
