// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-repair-desk/internal/config"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/store"
)

type appInfoService struct {
	appVersion string
	health     store.HealthChecker

	logger *logger.Logger
}

// NewAppInfoService constructs an [AppInfoService]. A nil health checker
// reports the service as always ready.
func NewAppInfoService(cfg config.App, health store.HealthChecker, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		health:     health,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

// Ping reports whether the database answers.
func (s *appInfoService) Ping(ctx context.Context) error {
	if s.health == nil {
		return nil
	}
	if err := s.health.PingContext(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "appInfoService.Ping").Msg("database is unreachable")
		return err
	}
	return nil
}
