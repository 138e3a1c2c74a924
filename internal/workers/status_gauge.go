// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MKhiriev/go-repair-desk/internal/config"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
)

const refreshTimeout = 10 * time.Second

// StatusGaugeWorker periodically copies the per-status request counts into
// the metrics gauge.
type StatusGaugeWorker struct {
	cron    *cron.Cron
	counter StatusCounter
	gauge   StatusGauge
	initial sync.WaitGroup

	logger *logger.Logger
}

// NewStatusGaugeWorker schedules the refresh job. cfg.MetricsSchedule
// accepts standard cron specs and descriptors such as "@every 1m".
func NewStatusGaugeWorker(cfg config.Workers, counter StatusCounter, gauge StatusGauge, logger *logger.Logger) (*StatusGaugeWorker, error) {
	w := &StatusGaugeWorker{
		cron:    cron.New(),
		counter: counter,
		gauge:   gauge,
		logger:  logger,
	}

	if _, err := w.cron.AddFunc(cfg.MetricsSchedule, w.tick); err != nil {
		return nil, fmt.Errorf("invalid metrics schedule %q: %w", cfg.MetricsSchedule, err)
	}
	return w, nil
}

// Refresh reads the counts once and updates the gauge.
func (w *StatusGaugeWorker) Refresh(ctx context.Context) error {
	counts, err := w.counter.ByStatus(ctx)
	if err != nil {
		return fmt.Errorf("refresh status gauge: %w", err)
	}
	w.gauge.SetStatusCounts(counts)
	return nil
}

func (w *StatusGaugeWorker) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := w.Refresh(w.logger.WithContext(ctx)); err != nil {
		w.logger.Err(err).Str("func", "StatusGaugeWorker.tick").Msg("status gauge refresh failed")
	}
}

// Run refreshes the gauge immediately in the background and starts the
// schedule.
func (w *StatusGaugeWorker) Run() {
	w.initial.Add(1)
	go func() {
		defer w.initial.Done()
		w.tick()
	}()
	w.cron.Start()
	w.logger.Info().Str("func", "StatusGaugeWorker.Run").Msg("status gauge worker started")
}

// Stop halts the schedule and waits for running refreshes, including the
// startup one, to finish.
func (w *StatusGaugeWorker) Stop() {
	<-w.cron.Stop().Done()
	w.initial.Wait()
	w.logger.Info().Str("func", "StatusGaugeWorker.Stop").Msg("status gauge worker stopped")
}
