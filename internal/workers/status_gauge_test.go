// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-repair-desk/internal/config"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/models"
)

type stubCounter struct {
	counts []models.StatusCount
	err    error
}

func (s stubCounter) ByStatus(context.Context) ([]models.StatusCount, error) {
	return s.counts, s.err
}

type recordingGauge struct {
	mu    sync.Mutex
	calls [][]models.StatusCount
}

func (g *recordingGauge) SetStatusCounts(counts []models.StatusCount) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, counts)
}

func (g *recordingGauge) len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

func TestNewStatusGaugeWorker_InvalidSchedule(t *testing.T) {
	_, err := NewStatusGaugeWorker(config.Workers{MetricsSchedule: "every now and then"}, stubCounter{}, &recordingGauge{}, logger.Nop())
	assert.Error(t, err)
}

func TestStatusGaugeWorker_Refresh(t *testing.T) {
	counts := []models.StatusCount{{Status: models.StatusNew, TotalRequests: 2}}
	gauge := &recordingGauge{}
	w, err := NewStatusGaugeWorker(config.Workers{MetricsSchedule: "@every 1h"}, stubCounter{counts: counts}, gauge, logger.Nop())
	require.NoError(t, err)

	require.NoError(t, w.Refresh(context.Background()))
	require.Equal(t, 1, gauge.len())
	assert.Equal(t, counts, gauge.calls[0])
}

func TestStatusGaugeWorker_RunRefreshesOnceAtStartup(t *testing.T) {
	gauge := &recordingGauge{}
	w, err := NewStatusGaugeWorker(config.Workers{MetricsSchedule: "@every 1h"}, stubCounter{}, gauge, logger.Nop())
	require.NoError(t, err)

	w.Run()
	w.Stop()

	assert.Equal(t, 1, gauge.len())
}

func TestStatusGaugeWorker_RefreshError(t *testing.T) {
	dbErr := errors.New("db down")
	gauge := &recordingGauge{}
	w, err := NewStatusGaugeWorker(config.Workers{MetricsSchedule: "@every 1h"}, stubCounter{err: dbErr}, gauge, logger.Nop())
	require.NoError(t, err)

	assert.ErrorIs(t, w.Refresh(context.Background()), dbErr)
	assert.Equal(t, 0, gauge.len())
}

func TestStatusGaugeWorker_RunRefreshesImmediately(t *testing.T) {
	gauge := &recordingGauge{}
	w, err := NewStatusGaugeWorker(config.Workers{MetricsSchedule: "@every 1h"}, stubCounter{}, gauge, logger.Nop())
	require.NoError(t, err)

	w.Run()
	defer w.Stop()

	assert.Eventually(t, func() bool { return gauge.len() == 1 }, time.Second, 10*time.Millisecond)
}
