// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/models"
)

func newTestCommentRepo(t *testing.T) (CommentRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return NewCommentRepository(db, logger.Nop()), mock
}

var commentedAt = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func TestCreateComment_Success(t *testing.T) {
	repo, mock := newTestCommentRepo(t)

	comment := models.Comment{Message: "Replaced the fan", MasterID: 2, RequestID: 12, CreatedAt: commentedAt}

	mock.ExpectQuery("INSERT INTO comments").
		WithArgs("Replaced the fan", int64(2), int64(12), commentedAt).
		WillReturnRows(sqlmock.NewRows([]string{"comment_id"}).AddRow(5))

	created, err := repo.CreateComment(context.Background(), comment)
	require.NoError(t, err)

	assert.Equal(t, int64(5), created.CommentID)
	assert.Equal(t, "Replaced the fan", created.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateComment_Errors(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{name: "unknown request or author", dbErr: pgError(pgerrcode.ForeignKeyViolation), wantErr: ErrReferenceNotFound},
		{name: "driver failure", dbErr: errors.New("connection reset"), wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestCommentRepo(t)
			mock.ExpectQuery("INSERT INTO comments").WillReturnError(tt.dbErr)

			_, err := repo.CreateComment(context.Background(), models.Comment{Message: "m", MasterID: 1, RequestID: 1})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetCommentByID(t *testing.T) {
	repo, mock := newTestCommentRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM comments WHERE comment_id = \\$1").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(commentColumns).AddRow(5, "Replaced the fan", 2, 12, commentedAt))

	comment, err := repo.GetCommentByID(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, models.Comment{CommentID: 5, Message: "Replaced the fan", MasterID: 2, RequestID: 12, CreatedAt: commentedAt}, comment)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCommentByID_NotFound(t *testing.T) {
	repo, mock := newTestCommentRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM comments").
		WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows(commentColumns))

	_, err := repo.GetCommentByID(context.Background(), 9)
	require.ErrorIs(t, err, ErrCommentNotFound)
}

func TestListCommentsByRequest(t *testing.T) {
	repo, mock := newTestCommentRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM comments WHERE request_id = \\$1 ORDER BY created_at, comment_id").
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows(commentColumns).
			AddRow(5, "Diagnosed", 2, 12, commentedAt).
			AddRow(6, "Parts ordered", 2, 12, commentedAt.Add(time.Hour)))

	comments, err := repo.ListCommentsByRequest(context.Background(), 12)
	require.NoError(t, err)

	require.Len(t, comments, 2)
	assert.Equal(t, "Diagnosed", comments[0].Message)
	assert.Equal(t, "Parts ordered", comments[1].Message)
}

func TestListCommentsByRequest_Empty(t *testing.T) {
	repo, mock := newTestCommentRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM comments").
		WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows(commentColumns))

	comments, err := repo.ListCommentsByRequest(context.Background(), 12)
	require.NoError(t, err)

	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}

func TestListCommentsByRequest_QueryError(t *testing.T) {
	repo, mock := newTestCommentRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM comments").WillReturnError(errors.New("boom"))

	_, err := repo.ListCommentsByRequest(context.Background(), 12)
	require.ErrorIs(t, err, ErrExecutingQuery)
}
