// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-repair-desk/internal/config"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/metrics"
	"github.com/MKhiriev/go-repair-desk/internal/ratelimit"
	"github.com/MKhiriev/go-repair-desk/internal/service"
	"github.com/MKhiriev/go-repair-desk/internal/utils"
	"github.com/MKhiriev/go-repair-desk/models"
)

// Handler is the root HTTP transport handler. A nil metrics collector or
// limiter disables the corresponding middleware.
type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics
	limiter  ratelimit.Limiter
	traceIDs utils.UUIDGenerator

	// trustProxyHeaders enables chi's RealIP, which rewrites RemoteAddr
	// from forwarding headers.
	trustProxyHeaders bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, metrics *metrics.Metrics, limiter ratelimit.Limiter, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Bool("trust_proxy_headers", cfg.TrustProxyHeaders).Msg("http handler created")
	return &Handler{
		services:          services,
		metrics:           metrics,
		limiter:           limiter,
		trustProxyHeaders: cfg.TrustProxyHeaders,
		logger:            logger,
	}
}

// caller returns the authenticated caller stored by the auth middleware.
// It answers 401 itself when none is present.
func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (models.Caller, bool) {
	caller, ok := utils.GetCallerFromContext(r.Context())
	if !ok {
		utils.WriteError(w, ErrUnauthenticated.Error(), http.StatusUnauthorized)
		return models.Caller{}, false
	}
	return caller, true
}

// decodeJSON reads a single JSON document from the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case errors.Is(err, io.EOF):
		return ErrEmptyBody
	case err != nil:
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

// pathID parses the named chi URL parameter as a positive id.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryInt parses an integer query parameter, returning 0 when it is absent
// or malformed.
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}
