// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-repair-desk/internal/config"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/store"
)

// Services bundles every business service used by the transport layer.
type Services struct {
	AuthService       AuthService
	UserService       UserService
	RequestService    RequestService
	CommentService    CommentService
	StatisticsService StatisticsService
	FeedbackService   FeedbackService
	AppInfoService    AppInfoService
}

// Dependencies are the outbound collaborators of the services. Any of them
// may be nil.
type Dependencies struct {
	Publisher EventPublisher
	Recorder  LifecycleRecorder
	QRCode    QRCodeGenerator
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, deps Dependencies, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, storages.HealthChecker(), logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AuthService:       NewAuthService(storages.UserRepository, cfg.App, logger),
		UserService:       NewUserService(storages.UserRepository, cfg.App, logger),
		RequestService:    NewRequestService(storages.RequestRepository, storages.UserRepository, deps.Publisher, deps.Recorder, cfg.App, logger),
		CommentService:    NewCommentService(storages.CommentRepository, storages.RequestRepository, logger),
		StatisticsService: NewStatisticsService(storages.StatisticsRepository, logger),
		FeedbackService:   NewFeedbackService(deps.QRCode, cfg.App, logger),
		AppInfoService:    appInfo,
	}, nil
}
