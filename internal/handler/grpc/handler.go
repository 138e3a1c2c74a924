// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc implements the gRPC transport. It serves the standard
// grpc.health.v1 service, reporting SERVING while the database answers.
package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/service"
)

// ServiceName is the name under which the repair desk reports its own
// health, besides the overall "" service.
const ServiceName = "repairdesk.RepairDesk"

// Handler is the root gRPC transport handler.
//
// It stores references to the service layer and structured logger so that
// gRPC method handlers can delegate business logic and emit consistent logs.
// A handler instance is created once at startup and shared by the gRPC server.
type Handler struct {
	healthpb.UnimplementedHealthServer

	// services provides access to all application business operations.
	services *service.Services

	// logger is used for request-scoped and diagnostic log output.
	logger *logger.Logger
}

// NewHandler constructs a [Handler] with the provided service container and
// logger.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}

// Register attaches the handler's services to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h)
	reflection.Register(server)
}

// Check pings the database through the app info service.
func (h *Handler) Check(ctx context.Context, req *healthpb.HealthCheckRequest) (*healthpb.HealthCheckResponse, error) {
	switch req.GetService() {
	case "", ServiceName:
	default:
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}

	if err := h.services.AppInfoService.Ping(ctx); err != nil {
		h.logger.Err(err).Str("func", "*Handler.Check").Msg("health check failed")
		return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_NOT_SERVING}, nil
	}

	return &healthpb.HealthCheckResponse{Status: healthpb.HealthCheckResponse_SERVING}, nil
}

// UnaryLogging logs every unary call with its method, code and duration.
func (h *Handler) UnaryLogging(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	log := h.logger.GetChildLogger()
	ctx = log.WithContext(ctx)

	resp, err := next(ctx, req)

	log.Info().
		Str("grpc_method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Send()
	return resp, err
}
