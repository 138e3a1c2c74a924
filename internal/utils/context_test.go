// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-repair-desk/models"
)

func TestContextKeyString(t *testing.T) {
	if ClaimsCtxKey.String() != "claims" {
		t.Errorf("expected 'claims', got '%s'", ClaimsCtxKey.String())
	}
}

func TestGetCallerFromContext_Success(t *testing.T) {
	claims := testClaims()
	ctx := WithClaims(context.Background(), &claims)

	caller, ok := GetCallerFromContext(ctx)
	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if caller.UserID != 123 || caller.Role != models.RoleManager || caller.Login != "alice" {
		t.Errorf("unexpected caller %+v", caller)
	}
}

func TestGetCallerFromContext_Missing(t *testing.T) {
	if _, ok := GetCallerFromContext(context.Background()); ok {
		t.Fatal("expected ok=false, got true")
	}
}

func TestGetClaimsFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), ClaimsCtxKey, "not-claims")

	if _, ok := GetClaimsFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetCallerFromContext_BadSubject(t *testing.T) {
	claims := models.Claims{Login: "x"}
	claims.Subject = "abc"
	ctx := WithClaims(context.Background(), &claims)

	if _, ok := GetCallerFromContext(ctx); ok {
		t.Fatal("expected ok=false for non numeric subject, got true")
	}
}
