// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-repair-desk/internal/config"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
)

// Storages bundles every repository served by one database connection.
type Storages struct {
	UserRepository       UserRepository
	RequestRepository    RequestRepository
	CommentRepository    CommentRepository
	StatisticsRepository StatisticsRepository

	db *DB
}

// NewStorages connects to the configured database, applies migrations and
// builds the repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnect(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("failed to apply migrations")
		_ = db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return NewStoragesFromDB(db, log), nil
}

// NewStoragesFromDB builds the repositories over an already connected and
// migrated database.
func NewStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:       NewUserRepository(db, log),
		RequestRepository:    NewRequestRepository(db, log),
		CommentRepository:    NewCommentRepository(db, log),
		StatisticsRepository: NewStatisticsRepository(db, log),
		db:                   db,
	}
}

// HealthChecker exposes the connection ping for readiness checks.
func (s *Storages) HealthChecker() HealthChecker {
	return s.db
}

// Close releases the underlying connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
