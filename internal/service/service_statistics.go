// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"math"

	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/store"
	"github.com/MKhiriev/go-repair-desk/models"
)

type statisticsService struct {
	statisticsRepository store.StatisticsRepository
	logger               *logger.Logger
}

// NewStatisticsService constructs a [StatisticsService]. Statistics are
// public and take no caller.
func NewStatisticsService(statisticsRepository store.StatisticsRepository, logger *logger.Logger) StatisticsService {
	return &statisticsService{
		statisticsRepository: statisticsRepository,
		logger:               logger,
	}
}

// CompletedCount returns the number of requests ready for pickup.
func (s *statisticsService) CompletedCount(ctx context.Context) (int64, error) {
	count, err := s.statisticsRepository.CountByStatus(ctx, models.StatusReadyForPickup)
	if err != nil {
		return 0, fmt.Errorf("completed count: %w", err)
	}
	return count, nil
}

// AverageCompletionDays returns the mean number of whole days between start
// and completion, rounded half to even. It is 0 when nothing is completed.
func (s *statisticsService) AverageCompletionDays(ctx context.Context) (int64, error) {
	spans, err := s.statisticsRepository.ListCompletionSpans(ctx)
	if err != nil {
		return 0, fmt.Errorf("average completion days: %w", err)
	}
	return averageDays(spans), nil
}

func averageDays(spans []models.CompletionSpan) int64 {
	if len(spans) == 0 {
		return 0
	}
	var total int64
	for _, span := range spans {
		total += int64(span.CompletionDate.DaysSince(span.StartDate))
	}
	return int64(math.RoundToEven(float64(total) / float64(len(spans))))
}

func (s *statisticsService) ByEquipmentType(ctx context.Context) ([]models.EquipmentTypeCount, error) {
	counts, err := s.statisticsRepository.CountByEquipmentType(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by equipment type: %w", err)
	}
	return counts, nil
}

func (s *statisticsService) SpecialistWorkload(ctx context.Context) ([]models.SpecialistWorkload, error) {
	workload, err := s.statisticsRepository.SpecialistWorkload(ctx)
	if err != nil {
		return nil, fmt.Errorf("specialist workload: %w", err)
	}
	return workload, nil
}

// ByStatus returns request counts per workflow state. Legacy spellings are
// folded into their canonical status.
func (s *statisticsService) ByStatus(ctx context.Context) ([]models.StatusCount, error) {
	counts, err := s.statisticsRepository.CountGroupedByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	return counts, nil
}
