// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-repair-desk/models"
)

var (
	// ErrInvalidInput is returned for missing, malformed or out-of-range
	// request fields. Errors wrapping it carry a human-readable detail.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCredentials is returned for an unknown login and for a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid login or password")

	ErrTokenIsExpired      = errors.New("token is expired")
	ErrTokenIsInvalid      = errors.New("token is invalid")
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrForbidden is matched by every [ForbiddenError].
	ErrForbidden = errors.New("insufficient permissions")

	ErrSelfDeleteForbidden     = errors.New("you cannot delete your own account")
	ErrIllegalStatusTransition = errors.New("illegal status transition")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
	ErrFeedbackNotConfigured = errors.New("feedback form is not configured")
)

// invalidInput builds an error matching [ErrInvalidInput] with a detail
// message suitable for the client.
func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ForbiddenError rejects a caller whose role or ownership does not permit
// the operation. Required is empty for ownership checks.
type ForbiddenError struct {
	Required []models.Role
	Actual   models.Role
	Reason   string
}

func (e *ForbiddenError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	if len(e.Required) == 0 {
		return ErrForbidden.Error()
	}
	roles := make([]string, len(e.Required))
	for i, r := range e.Required {
		roles[i] = string(r)
	}
	return fmt.Sprintf("%s: requires one of [%s], got %q", ErrForbidden, strings.Join(roles, ", "), e.Actual)
}

// Is makes errors.Is(err, ErrForbidden) hold for every ForbiddenError.
func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}

func forbiddenRole(caller models.Caller, required ...models.Role) error {
	return &ForbiddenError{Required: required, Actual: caller.Role}
}

func forbiddenOwner(caller models.Caller, reason string) error {
	return &ForbiddenError{Actual: caller.Role, Reason: reason}
}
