// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// @title Repair Desk API
// @version 1.0
// @description Repair request management for a climate equipment service centre.

// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"fmt"

	_ "github.com/MKhiriev/go-repair-desk/docs"
	"github.com/MKhiriev/go-repair-desk/internal/adapter"
	"github.com/MKhiriev/go-repair-desk/internal/config"
	"github.com/MKhiriev/go-repair-desk/internal/events"
	"github.com/MKhiriev/go-repair-desk/internal/handler"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/metrics"
	"github.com/MKhiriev/go-repair-desk/internal/ratelimit"
	"github.com/MKhiriev/go-repair-desk/internal/server"
	"github.com/MKhiriev/go-repair-desk/internal/service"
	"github.com/MKhiriev/go-repair-desk/internal/store"
	"github.com/MKhiriev/go-repair-desk/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

type publisher interface {
	service.EventPublisher
	Close() error
}

func main() {
	printBuildInfo()

	log := logger.NewLogger("repair-desk-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	logger.SetLevel(cfg.App.LogLevel)

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer closeWithLog(log, "storages", storages.Close)

	collector := metrics.New()

	pub := newPublisher(cfg.Adapter.Broker, log)
	defer closeWithLog(log, "event publisher", pub.Close)

	limiter, closeLimiter := ratelimit.New(ctx, cfg.Server, cfg.Adapter.Redis, log)
	defer closeWithLog(log, "rate limiter", closeLimiter)

	services, err := service.NewServices(storages, *cfg, service.Dependencies{
		Publisher: pub,
		Recorder:  collector,
		QRCode:    newQRCodeGenerator(cfg.Adapter.QR, log),
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	gauge, err := workers.NewStatusGaugeWorker(cfg.Workers, services.StatisticsService, collector, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating workers")
	}
	jobs := workers.NewWorkers(gauge)
	jobs.Run()
	defer jobs.Stop()

	handlers, err := handler.NewHandlers(services, collector, limiter, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// newPublisher connects to the broker when one is configured. Without a
// broker, or when it is unreachable, events are dropped.
func newPublisher(cfg config.Broker, log *logger.Logger) publisher {
	if cfg.URL == "" {
		log.Info().Msg("no message broker configured, request events are not published")
		return events.NopPublisher{}
	}

	pub, err := events.NewAMQPPublisher(cfg, log)
	if err != nil {
		log.Err(err).Msg("message broker is unreachable, request events are not published")
		return events.NopPublisher{}
	}
	return pub
}

// newQRCodeGenerator returns nil when no generator is configured so that the
// feedback service serves the link without an image.
func newQRCodeGenerator(cfg config.QR, log *logger.Logger) service.QRCodeGenerator {
	client, err := adapter.NewQRClient(cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("QR code generator is disabled")
		return nil
	}
	return client
}

func closeWithLog(log *logger.Logger, name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		log.Err(err).Str("component", name).Msg("error closing component")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
