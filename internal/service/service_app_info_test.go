// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-repair-desk/internal/config"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService_Success(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, nil, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, svc)
}

func TestNewAppInfoService_EmptyVersion_ReturnsError(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: ""}, nil, logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

// ─────────────────────────────────────────────
// GetAppVersion
// ─────────────────────────────────────────────

func TestGetAppVersion_ReturnsConfiguredVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "3.1.4"}, nil, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, "3.1.4", svc.GetAppVersion(context.Background()))
}

func TestGetAppVersion_VersionWithSpecialChars(t *testing.T) {
	version := "v1.2.3-beta+build.42"
	svc, err := NewAppInfoService(config.App{Version: version}, nil, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, version, svc.GetAppVersion(context.Background()))
}

// ─────────────────────────────────────────────
// Ping
// ─────────────────────────────────────────────

func TestPing_DatabaseReachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	health := mock.NewMockHealthChecker(ctrl)
	ctx := context.Background()

	health.EXPECT().PingContext(ctx).Return(nil)

	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, health, logger.Nop())
	require.NoError(t, err)

	assert.NoError(t, svc.Ping(ctx))
}

func TestPing_DatabaseUnreachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	health := mock.NewMockHealthChecker(ctrl)
	ctx := context.Background()
	pingErr := errors.New("connection refused")

	health.EXPECT().PingContext(ctx).Return(pingErr)

	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, health, logger.Nop())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Ping(ctx), pingErr)
}

func TestPing_NoHealthChecker(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, nil, logger.Nop())
	require.NoError(t, err)

	assert.NoError(t, svc.Ping(context.Background()))
}
