// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-repair-desk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ErrorClassificator maps driver errors onto [ErrorClassification] values.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

// UserRepository persists accounts in the users table.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	GetUserByLogin(ctx context.Context, login string) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error)
	UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
}

// RequestRepository persists repair requests in the requests table.
type RequestRepository interface {
	CreateRequest(ctx context.Context, request models.RepairRequest) (models.RepairRequest, error)
	GetRequestByID(ctx context.Context, requestID int64) (models.RepairRequest, error)
	ListRequests(ctx context.Context, filter models.RequestFilter) ([]models.RepairRequest, int64, error)
	UpdateRequest(ctx context.Context, requestID int64, update models.RequestUpdate) (models.RepairRequest, error)
	// DeleteRequest removes the request together with its comments.
	DeleteRequest(ctx context.Context, requestID int64) error
}

// CommentRepository persists comments in the comments table.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	GetCommentByID(ctx context.Context, commentID int64) (models.Comment, error)
	ListCommentsByRequest(ctx context.Context, requestID int64) ([]models.Comment, error)
}

// StatisticsRepository runs the aggregate queries over repair requests.
type StatisticsRepository interface {
	CountByStatus(ctx context.Context, status models.Status) (int64, error)
	ListCompletionSpans(ctx context.Context) ([]models.CompletionSpan, error)
	CountByEquipmentType(ctx context.Context) ([]models.EquipmentTypeCount, error)
	SpecialistWorkload(ctx context.Context) ([]models.SpecialistWorkload, error)
	CountGroupedByStatus(ctx context.Context) ([]models.StatusCount, error)
}

// HealthChecker reports whether the database is reachable.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}
