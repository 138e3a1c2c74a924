// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-repair-desk/internal/adapter"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/service"
	"github.com/MKhiriev/go-repair-desk/internal/store"
	"github.com/MKhiriev/go-repair-desk/internal/utils"
	"github.com/MKhiriev/go-repair-desk/models"
)

var errorStatusMap = map[error]int{
	ErrEmptyBody:   http.StatusBadRequest,
	ErrInvalidJSON: http.StatusBadRequest,

	service.ErrInvalidInput:            http.StatusBadRequest,
	service.ErrInvalidCredentials:      http.StatusUnauthorized,
	service.ErrTokenIsExpired:          http.StatusUnauthorized,
	service.ErrTokenIsInvalid:          http.StatusUnauthorized,
	service.ErrForbidden:               http.StatusForbidden,
	service.ErrSelfDeleteForbidden:     http.StatusBadRequest,
	service.ErrIllegalStatusTransition: http.StatusConflict,
	service.ErrFeedbackNotConfigured:   http.StatusServiceUnavailable,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,
	service.ErrVersionIsNotSpecified:   http.StatusInternalServerError,

	store.ErrLoginAlreadyExists:  http.StatusConflict,
	store.ErrUserIsReferenced:    http.StatusConflict,
	store.ErrUserNotFound:        http.StatusNotFound,
	store.ErrRequestNotFound:     http.StatusNotFound,
	store.ErrCommentNotFound:     http.StatusNotFound,
	store.ErrReferenceNotFound:   http.StatusBadRequest,
	store.ErrConstraintViolation: http.StatusBadRequest,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,

	adapter.ErrBadRequest:          http.StatusBadGateway,
	adapter.ErrNotFound:            http.StatusBadGateway,
	adapter.ErrTooManyRequests:     http.StatusBadGateway,
	adapter.ErrInternalServerError: http.StatusBadGateway,
	adapter.ErrBadGateway:          http.StatusBadGateway,
	adapter.ErrEmptyResponse:       http.StatusBadGateway,
}

// detailedErrors carry a client-facing detail in the wrapping message.
var detailedErrors = []error{
	ErrEmptyBody,
	ErrInvalidJSON,
	service.ErrInvalidInput,
	service.ErrIllegalStatusTransition,
}

// statusFromError returns the HTTP status for err together with the
// sentinel it matched. Unknown errors map to 500 and a nil sentinel.
func statusFromError(err error) (int, error) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status, target
		}
	}
	return http.StatusInternalServerError, nil
}

// errorMessage picks the text shown to the client. Internal failures are
// never described.
func errorMessage(err error, status int, target error) string {
	if status == http.StatusInternalServerError {
		return internalErrorMessage
	}
	for _, detailed := range detailedErrors {
		if errors.Is(err, detailed) {
			return err.Error()
		}
	}
	if target != nil {
		return target.Error()
	}
	return err.Error()
}

// writeError maps err onto the error response contract. Forbidden errors
// carry the required and actual roles.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status, target := statusFromError(err)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	var forbidden *service.ForbiddenError
	if errors.As(err, &forbidden) {
		_, _ = utils.WriteJSON(w, models.ForbiddenResponse{
			Error:         forbidden.Error(),
			RequiredRoles: forbidden.Required,
			UserRole:      forbidden.Actual,
		}, http.StatusForbidden)
		return
	}

	utils.WriteError(w, errorMessage(err, status, target), status)
}
