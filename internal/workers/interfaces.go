// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running and stopping multiple workers in a unified way.
package workers

import (
	"context"

	"github.com/MKhiriev/go-repair-desk/models"
)

// Worker is the interface that must be implemented by any background worker.
//
// Run must not block; implementations spawn their own goroutines. Stop
// blocks until in-flight work has finished.
type Worker interface {
	Run()
	Stop()
}

// StatusCounter reports how many requests are in each status.
type StatusCounter interface {
	ByStatus(ctx context.Context) ([]models.StatusCount, error)
}

// StatusGauge receives the per-status counts.
type StatusGauge interface {
	SetStatusCounts(counts []models.StatusCount)
}
