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

type commentRepository struct {
	*DB
	logger *logger.Logger
}

// NewCommentRepository constructs a [CommentRepository] backed by the
// provided database connection and logger.
func NewCommentRepository(db *DB, logger *logger.Logger) CommentRepository {
	logger.Debug().Msg("creating comment repository")
	return &commentRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateComment inserts comment and returns it with the assigned id. A
// missing author or request yields [ErrReferenceNotFound].
func (r *commentRepository) CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertCommentQuery(r.builder, comment)
	if err != nil {
		log.Err(err).Str("func", "commentRepository.CreateComment").Msg("failed to build query")
		return models.Comment{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.DB.QueryRowxContext(ctx, query, args...).Scan(&comment.CommentID); err != nil {
		log.Err(err).
			Str("func", "commentRepository.CreateComment").
			Int64("request_id", comment.RequestID).
			Msg("failed to insert comment")
		if r.classify(err) == ForeignKeyViolation {
			return models.Comment{}, ErrReferenceNotFound
		}
		return models.Comment{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return comment, nil
}

// GetCommentByID returns the comment with the given id or
// [ErrCommentNotFound].
func (r *commentRepository) GetCommentByID(ctx context.Context, commentID int64) (models.Comment, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectCommentsQuery(r.builder, sq.Eq{"comment_id": commentID})
	if err != nil {
		return models.Comment{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var comment models.Comment
	if err = r.DB.GetContext(ctx, &comment, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Comment{}, ErrCommentNotFound
		}
		log.Err(err).Str("func", "commentRepository.GetCommentByID").Int64("comment_id", commentID).Msg("failed to select comment")
		return models.Comment{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return comment, nil
}

// ListCommentsByRequest returns the comments of a request, oldest first.
func (r *commentRepository) ListCommentsByRequest(ctx context.Context, requestID int64) ([]models.Comment, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectCommentsQuery(r.builder, sq.Eq{"request_id": requestID})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	comments := make([]models.Comment, 0)
	if err = r.DB.SelectContext(ctx, &comments, query, args...); err != nil {
		log.Err(err).Str("func", "commentRepository.ListCommentsByRequest").Int64("request_id", requestID).Msg("failed to select comments")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return comments, nil
}
