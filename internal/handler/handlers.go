// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/go-repair-desk/internal/config"
	"github.com/MKhiriev/go-repair-desk/internal/handler/grpc"
	"github.com/MKhiriev/go-repair-desk/internal/handler/http"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/metrics"
	"github.com/MKhiriev/go-repair-desk/internal/ratelimit"
	"github.com/MKhiriev/go-repair-desk/internal/service"
)

// Handlers holds one handler per enabled transport.
type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers builds the handlers for every transport that has an address
// configured. At least one must be enabled.
func NewHandlers(
	services *service.Services,
	metrics *metrics.Metrics,
	limiter ratelimit.Limiter,
	cfg config.Server,
	logger *logger.Logger,
) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, metrics, limiter, cfg, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
