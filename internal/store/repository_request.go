// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/models"
)

// requestRepository is the SQL implementation of [RequestRepository] over
// the "requests" table.
type requestRepository struct {
	*DB
	logger *logger.Logger
}

// NewRequestRepository constructs a [RequestRepository] backed by the
// provided database connection and logger.
func NewRequestRepository(db *DB, logger *logger.Logger) RequestRepository {
	logger.Debug().Msg("creating request repository")
	return &requestRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateRequest inserts request and returns the stored row. A client or
// specialist id that does not exist yields [ErrReferenceNotFound].
func (r *requestRepository) CreateRequest(ctx context.Context, request models.RepairRequest) (models.RepairRequest, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertRequestQuery(r.builder, request)
	if err != nil {
		log.Err(err).Str("func", "requestRepository.CreateRequest").Msg("failed to build query")
		return models.RepairRequest{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var requestID int64
	if err = r.DB.QueryRowxContext(ctx, query, args...).Scan(&requestID); err != nil {
		log.Err(err).
			Str("func", "requestRepository.CreateRequest").
			Int64("client_id", request.ClientID).
			Msg("failed to insert repair request")
		return models.RepairRequest{}, r.writeError(err)
	}

	log.Info().
		Str("func", "requestRepository.CreateRequest").
		Int64("request_id", requestID).
		Int64("client_id", request.ClientID).
		Msg("repair request created")

	return r.GetRequestByID(ctx, requestID)
}

// GetRequestByID returns the request with the given id or
// [ErrRequestNotFound].
func (r *requestRepository) GetRequestByID(ctx context.Context, requestID int64) (models.RepairRequest, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Select(requestColumns...).
		From("requests").
		Where(sq.Eq{"request_id": requestID}).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "requestRepository.GetRequestByID").Msg("failed to build query")
		return models.RepairRequest{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var request models.RepairRequest
	if err = r.DB.GetContext(ctx, &request, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RepairRequest{}, ErrRequestNotFound
		}
		log.Err(err).Str("func", "requestRepository.GetRequestByID").Int64("request_id", requestID).Msg("failed to select repair request")
		return models.RepairRequest{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return request, nil
}

// ListRequests returns one page of requests matching filter together with
// the total number of matching rows.
func (r *requestRepository) ListRequests(ctx context.Context, filter models.RequestFilter) ([]models.RepairRequest, int64, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountRequestsQuery(r.builder, filter)
	if err != nil {
		log.Err(err).Str("func", "requestRepository.ListRequests").Msg("failed to build count query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err = r.DB.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		log.Err(err).Str("func", "requestRepository.ListRequests").Msg("failed to count repair requests")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	query, args, err := buildListRequestsQuery(r.builder, filter)
	if err != nil {
		log.Err(err).Str("func", "requestRepository.ListRequests").Msg("failed to build query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	requests := make([]models.RepairRequest, 0, filter.Limit)
	if err = r.DB.SelectContext(ctx, &requests, query, args...); err != nil {
		log.Err(err).Str("func", "requestRepository.ListRequests").Msg("failed to select repair requests")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requests, total, nil
}

// UpdateRequest writes the fields present in update and returns the stored
// row.
func (r *requestRepository) UpdateRequest(ctx context.Context, requestID int64, update models.RequestUpdate) (models.RepairRequest, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return r.GetRequestByID(ctx, requestID)
	}

	query, args, err := buildUpdateRequestQuery(r.builder, requestID, update)
	if err != nil {
		log.Err(err).Str("func", "requestRepository.UpdateRequest").Msg("failed to build query")
		return models.RepairRequest{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "requestRepository.UpdateRequest").Int64("request_id", requestID).Msg("failed to update repair request")
		return models.RepairRequest{}, r.writeError(err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return models.RepairRequest{}, ErrRequestNotFound
	}

	return r.GetRequestByID(ctx, requestID)
}

// DeleteRequest removes the request and its comments in one transaction.
func (r *requestRepository) DeleteRequest(ctx context.Context, requestID int64) error {
	log := logger.FromContext(ctx)

	deleteComments, commentArgs, err := r.builder.Delete("comments").Where(sq.Eq{"request_id": requestID}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	deleteRequest, requestArgs, err := r.builder.Delete("requests").Where(sq.Eq{"request_id": requestID}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "requestRepository.DeleteRequest").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteComments, commentArgs...); err != nil {
		log.Err(err).Str("func", "requestRepository.DeleteRequest").Int64("request_id", requestID).Msg("failed to delete comments")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	result, err := tx.ExecContext(ctx, deleteRequest, requestArgs...)
	if err != nil {
		log.Err(err).Str("func", "requestRepository.DeleteRequest").Int64("request_id", requestID).Msg("failed to delete repair request")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrRequestNotFound
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).Str("func", "requestRepository.DeleteRequest").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().Str("func", "requestRepository.DeleteRequest").Int64("request_id", requestID).Msg("repair request deleted")
	return nil
}

func (r *requestRepository) writeError(err error) error {
	switch r.classify(err) {
	case ForeignKeyViolation:
		return ErrReferenceNotFound
	case CheckViolation:
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	default:
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
}
