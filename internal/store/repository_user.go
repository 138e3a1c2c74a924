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

// userRepository is the SQL implementation of [UserRepository] over the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	*DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateUser inserts user and returns the stored row with its assigned id.
//
// Error handling:
//   - unique violation on login → [ErrLoginAlreadyExists].
//   - any other driver-level error → wrapped [ErrExecutingStatement].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(r.builder, user)
	if err != nil {
		log.Err(err).Str("func", "userRepository.CreateUser").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var userID int64
	if err = r.DB.QueryRowxContext(ctx, query, args...).Scan(&userID); err != nil {
		log.Err(err).Str("func", "userRepository.CreateUser").Str("login", user.Login).Msg("failed to insert user")
		if r.classify(err) == UniqueViolation {
			return models.User{}, ErrLoginAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return r.GetUserByID(ctx, userID)
}

// GetUserByID returns the user with the given id or [ErrUserNotFound].
func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.getUser(ctx, sq.Eq{"user_id": userID})
}

// GetUserByLogin returns the user with the given login or [ErrUserNotFound].
// Logins are compared exactly.
func (r *userRepository) GetUserByLogin(ctx context.Context, login string) (models.User, error) {
	return r.getUser(ctx, sq.Eq{"login": login})
}

func (r *userRepository) getUser(ctx context.Context, where sq.Sqlizer) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUsersQuery(r.builder, where)
	if err != nil {
		log.Err(err).Str("func", "userRepository.getUser").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	if err = r.DB.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "userRepository.getUser").Msg("failed to select user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// ListUsers returns every user ordered by id.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	return r.listUsers(ctx, nil)
}

// ListUsersByRole returns users holding role under any of its stored
// spellings, ordered by id.
func (r *userRepository) ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	return r.listUsers(ctx, sq.Eq{"user_type": role.Aliases()})
}

func (r *userRepository) listUsers(ctx context.Context, where sq.Sqlizer) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectUsersQuery(r.builder, where)
	if err != nil {
		log.Err(err).Str("func", "userRepository.listUsers").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	users := make([]models.User, 0)
	if err = r.DB.SelectContext(ctx, &users, query, args...); err != nil {
		log.Err(err).Str("func", "userRepository.listUsers").Msg("failed to select users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return users, nil
}

// UpdateUser writes the non-nil fields of update and returns the stored row.
// A login collision yields [ErrLoginAlreadyExists]; a missing row yields
// [ErrUserNotFound].
func (r *userRepository) UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return r.GetUserByID(ctx, userID)
	}

	query, args, err := buildUpdateUserQuery(r.builder, userID, update)
	if err != nil {
		log.Err(err).Str("func", "userRepository.UpdateUser").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "userRepository.UpdateUser").Int64("user_id", userID).Msg("failed to update user")
		if r.classify(err) == UniqueViolation {
			return models.User{}, ErrLoginAlreadyExists
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return models.User{}, ErrUserNotFound
	}

	return r.GetUserByID(ctx, userID)
}

// DeleteUser removes the user. It fails with [ErrUserIsReferenced] while
// requests or comments still point at the user.
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder.Delete("users").Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		log.Err(err).Str("func", "userRepository.DeleteUser").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "userRepository.DeleteUser").Int64("user_id", userID).Msg("failed to delete user")
		if r.classify(err) == ForeignKeyViolation {
			return ErrUserIsReferenced
		}
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrUserNotFound
	}

	log.Info().Str("func", "userRepository.DeleteUser").Int64("user_id", userID).Msg("user deleted")
	return nil
}
