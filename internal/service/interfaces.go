// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-repair-desk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService verifies credentials and issues, verifies and refreshes
// session tokens.
type AuthService interface {
	Login(ctx context.Context, login, password string) (models.User, models.Token, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	// ParseToken verifies a token without re-reading the directory.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	// RefreshToken verifies a token, re-reads its user and issues a new token
	// with current claims.
	RefreshToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService manages accounts.
type UserService interface {
	CreateUser(ctx context.Context, caller models.Caller, input models.CreateUserInput) (models.User, error)
	GetUser(ctx context.Context, caller models.Caller, userID int64) (models.User, error)
	ListUsers(ctx context.Context, caller models.Caller) ([]models.User, error)
	ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error)
	UpdateUser(ctx context.Context, caller models.Caller, userID int64, input models.UpdateUserInput) (models.User, error)
	DeleteUser(ctx context.Context, caller models.Caller, userID int64) error
}

// RequestService drives the repair request lifecycle.
type RequestService interface {
	CreateRequest(ctx context.Context, caller models.Caller, input models.CreateRequestInput) (models.RepairRequest, error)
	GetRequest(ctx context.Context, caller models.Caller, requestID int64) (models.RepairRequest, error)
	ListRequests(ctx context.Context, caller models.Caller, query models.RequestQuery) (models.RequestPage, error)
	UpdateRequest(ctx context.Context, caller models.Caller, requestID int64, input models.UpdateRequestInput) (models.RepairRequest, error)
	DeleteRequest(ctx context.Context, caller models.Caller, requestID int64) error
}

// CommentService manages comments on repair requests.
type CommentService interface {
	CreateComment(ctx context.Context, caller models.Caller, input models.CreateCommentInput) (models.Comment, error)
	GetComment(ctx context.Context, caller models.Caller, commentID int64) (models.Comment, error)
	ListComments(ctx context.Context, caller models.Caller, requestID int64) ([]models.Comment, error)
}

// StatisticsService computes read-only rollups over repair requests.
type StatisticsService interface {
	CompletedCount(ctx context.Context) (int64, error)
	AverageCompletionDays(ctx context.Context) (int64, error)
	ByEquipmentType(ctx context.Context) ([]models.EquipmentTypeCount, error)
	SpecialistWorkload(ctx context.Context) ([]models.SpecialistWorkload, error)
	ByStatus(ctx context.Context) ([]models.StatusCount, error)
}

// FeedbackService exposes the customer feedback form link and its QR code.
type FeedbackService interface {
	Feedback(ctx context.Context) (models.FeedbackResponse, error)
	QRCode(ctx context.Context) ([]byte, string, error)
}

// AppInfoService reports build and readiness information.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	Ping(ctx context.Context) error
}

// EventPublisher delivers request lifecycle events to interested parties.
type EventPublisher interface {
	PublishRequestEvent(ctx context.Context, event models.RequestEvent) error
}

// LifecycleRecorder records lifecycle counters.
type LifecycleRecorder interface {
	RequestCreated()
	StatusChanged(from, to models.Status)
}

// QRCodeGenerator renders data as a QR code image. It returns the image
// bytes and their content type.
type QRCodeGenerator interface {
	Generate(ctx context.Context, data string) ([]byte, string, error)
	ImageURL(data string) string
}
