// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/store"
	"github.com/MKhiriev/go-repair-desk/models"
)

type commentService struct {
	commentRepository store.CommentRepository
	requestRepository store.RequestRepository

	now    func() time.Time
	logger *logger.Logger
}

// NewCommentService constructs a [CommentService].
func NewCommentService(commentRepository store.CommentRepository, requestRepository store.RequestRepository, logger *logger.Logger) CommentService {
	return &commentService{
		commentRepository: commentRepository,
		requestRepository: requestRepository,
		now:               time.Now,
		logger:            logger,
	}
}

// CreateComment attaches a note to a request. The author is the caller.
func (s *commentService) CreateComment(ctx context.Context, caller models.Caller, input models.CreateCommentInput) (models.Comment, error) {
	log := logger.FromContext(ctx)

	if err := requireRole(caller, CommentCreateRoles...); err != nil {
		return models.Comment{}, err
	}

	message := strings.TrimSpace(input.Message)
	if message == "" || input.RequestID <= 0 {
		return models.Comment{}, invalidInput("missing required fields: message, request_id")
	}

	if _, err := s.requestRepository.GetRequestByID(ctx, input.RequestID); err != nil {
		return models.Comment{}, fmt.Errorf("create comment: %w", err)
	}

	created, err := s.commentRepository.CreateComment(ctx, models.Comment{
		Message:   message,
		MasterID:  caller.UserID,
		RequestID: input.RequestID,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		log.Err(err).Str("func", "commentService.CreateComment").Int64("request_id", input.RequestID).Msg("comment creation ended with error")
		if errors.Is(err, store.ErrReferenceNotFound) {
			return models.Comment{}, invalidInput("request or author does not exist")
		}
		return models.Comment{}, fmt.Errorf("create comment: %w", err)
	}

	log.Info().
		Str("func", "commentService.CreateComment").
		Int64("comment_id", created.CommentID).
		Int64("request_id", created.RequestID).
		Msg("comment created")
	return created, nil
}

// GetComment returns a comment if caller may read its request.
func (s *commentService) GetComment(ctx context.Context, caller models.Caller, commentID int64) (models.Comment, error) {
	comment, err := s.commentRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		return models.Comment{}, fmt.Errorf("get comment: %w", err)
	}

	if _, err = s.readableRequest(ctx, caller, comment.RequestID); err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// ListComments returns the comments of a request, oldest first.
func (s *commentService) ListComments(ctx context.Context, caller models.Caller, requestID int64) ([]models.Comment, error) {
	if _, err := s.readableRequest(ctx, caller, requestID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepository.ListCommentsByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (s *commentService) readableRequest(ctx context.Context, caller models.Caller, requestID int64) (models.RepairRequest, error) {
	request, err := s.requestRepository.GetRequestByID(ctx, requestID)
	if err != nil {
		return models.RepairRequest{}, fmt.Errorf("get request: %w", err)
	}
	if !canReadRequest(caller, request) {
		return models.RepairRequest{}, forbiddenOwner(caller, "access denied")
	}
	return request, nil
}
