// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/models"
)

// statisticsRepository runs read-only aggregate queries over repair
// requests. Legacy status and role spellings are folded into their canonical
// values.
type statisticsRepository struct {
	*DB
	logger *logger.Logger
}

// NewStatisticsRepository constructs a [StatisticsRepository].
func NewStatisticsRepository(db *DB, logger *logger.Logger) StatisticsRepository {
	logger.Debug().Msg("creating statistics repository")
	return &statisticsRepository{
		DB:     db,
		logger: logger,
	}
}

// CountByStatus returns the number of requests currently in status.
func (r *statisticsRepository) CountByStatus(ctx context.Context, status models.Status) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountByStatusQuery(r.builder, status)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = r.DB.GetContext(ctx, &count, query, args...); err != nil {
		log.Err(err).Str("func", "statisticsRepository.CountByStatus").Str("status", string(status)).Msg("failed to count requests")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// ListCompletionSpans returns start and completion days of every request
// that has a completion date.
func (r *statisticsRepository) ListCompletionSpans(ctx context.Context) ([]models.CompletionSpan, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCompletionSpansQuery(r.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	spans := make([]models.CompletionSpan, 0)
	if err = r.DB.SelectContext(ctx, &spans, query, args...); err != nil {
		log.Err(err).Str("func", "statisticsRepository.ListCompletionSpans").Msg("failed to select completion spans")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return spans, nil
}

// CountByEquipmentType returns request counts per appliance type, most
// frequent first.
func (r *statisticsRepository) CountByEquipmentType(ctx context.Context) ([]models.EquipmentTypeCount, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountByEquipmentTypeQuery(r.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	counts := make([]models.EquipmentTypeCount, 0)
	if err = r.DB.SelectContext(ctx, &counts, query, args...); err != nil {
		log.Err(err).Str("func", "statisticsRepository.CountByEquipmentType").Msg("failed to count requests by equipment type")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return counts, nil
}

// SpecialistWorkload returns the number of assigned requests for every
// specialist, zero included, ordered by specialist id.
func (r *statisticsRepository) SpecialistWorkload(ctx context.Context) ([]models.SpecialistWorkload, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSpecialistWorkloadQuery(r.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	workload := make([]models.SpecialistWorkload, 0)
	if err = r.DB.SelectContext(ctx, &workload, query, args...); err != nil {
		log.Err(err).Str("func", "statisticsRepository.SpecialistWorkload").Msg("failed to select specialist workload")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return workload, nil
}

// CountGroupedByStatus returns request counts per status. Rows stored under
// different spellings of the same status are merged. Known statuses come
// first in workflow order, unknown values follow alphabetically.
func (r *statisticsRepository) CountGroupedByStatus(ctx context.Context) ([]models.StatusCount, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountGroupedByStatusQuery(r.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows := make([]models.StatusCount, 0)
	if err = r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		log.Err(err).Str("func", "statisticsRepository.CountGroupedByStatus").Msg("failed to count requests by status")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return mergeStatusCounts(rows), nil
}

func mergeStatusCounts(rows []models.StatusCount) []models.StatusCount {
	totals := make(map[models.Status]int64, len(rows))
	for _, row := range rows {
		totals[row.Status] += row.TotalRequests
	}

	merged := make([]models.StatusCount, 0, len(totals))
	for _, status := range models.Statuses() {
		if total, ok := totals[status]; ok {
			merged = append(merged, models.StatusCount{Status: status, TotalRequests: total})
			delete(totals, status)
		}
	}

	unknown := make([]models.Status, 0, len(totals))
	for status := range totals {
		unknown = append(unknown, status)
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	for _, status := range unknown {
		merged = append(merged, models.StatusCount{Status: status, TotalRequests: totals[status]})
	}

	return merged
}
