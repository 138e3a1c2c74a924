// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-repair-desk/internal/config"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/store"
	"github.com/MKhiriev/go-repair-desk/internal/utils"
	"github.com/MKhiriev/go-repair-desk/models"
)

const (
	minLoginLength    = 3
	minPasswordLength = 3
)

type userService struct {
	userRepository store.UserRepository
	bcryptCost     int
	logger         *logger.Logger
}

// NewUserService constructs the account directory service.
func NewUserService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		bcryptCost:     cfg.BcryptCost,
		logger:         logger,
	}
}

// CreateUser registers a new account. Only managers may call it.
//
// All string fields are trimmed. The role defaults to Client and must be a
// known role. The password is stored as a bcrypt hash.
func (s *userService) CreateUser(ctx context.Context, caller models.Caller, input models.CreateUserInput) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := requireRole(caller, UserAdminRoles...); err != nil {
		return models.User{}, err
	}

	user := models.User{
		FullName: strings.TrimSpace(input.FullName),
		Phone:    strings.TrimSpace(input.Phone),
		Login:    strings.TrimSpace(input.Login),
		Role:     models.RoleClient,
	}
	password := strings.TrimSpace(input.Password)

	switch {
	case user.FullName == "":
		return models.User{}, invalidInput("full name cannot be empty")
	case user.Phone == "":
		return models.User{}, invalidInput("phone cannot be empty")
	case user.Login == "":
		return models.User{}, invalidInput("login cannot be empty")
	case password == "":
		return models.User{}, invalidInput("password cannot be empty")
	}
	if err := validateCredentials(user.Login, password); err != nil {
		return models.User{}, err
	}

	if strings.TrimSpace(input.Role) != "" {
		role, ok := models.ParseRole(input.Role)
		if !ok {
			return models.User{}, invalidInput("unknown user_type %q", input.Role)
		}
		user.Role = role
	}

	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "userService.CreateUser").Msg("failed to hash password")
		return models.User{}, err
	}
	user.Password = hash

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "userService.CreateUser").Str("login", user.Login).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().
		Str("func", "userService.CreateUser").
		Int64("user_id", created.UserID).
		Int64("created_by", caller.UserID).
		Msg("user created")
	return created, nil
}

// GetUser returns an account. Users may read themselves, managers anyone.
func (s *userService) GetUser(ctx context.Context, caller models.Caller, userID int64) (models.User, error) {
	if caller.UserID != userID && caller.Role != models.RoleManager {
		return models.User{}, forbiddenOwner(caller, "permission denied")
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ListUsers returns every account. Only managers may call it.
func (s *userService) ListUsers(ctx context.Context, caller models.Caller) ([]models.User, error) {
	if err := requireRole(caller, UserAdminRoles...); err != nil {
		return nil, err
	}

	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// ListUsersByRole returns accounts holding role, e.g. the specialists that
// can be assigned to a request.
func (s *userService) ListUsersByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	users, err := s.userRepository.ListUsersByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list users by role: %w", err)
	}
	return users, nil
}

// UpdateUser applies a partial update. Users may edit their own name, phone,
// login and password; managers may edit anyone, including the role.
func (s *userService) UpdateUser(ctx context.Context, caller models.Caller, userID int64, input models.UpdateUserInput) (models.User, error) {
	log := logger.FromContext(ctx)

	isManager := caller.Role == models.RoleManager
	if caller.UserID != userID && !isManager {
		return models.User{}, forbiddenOwner(caller, "permission denied")
	}

	current, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("update user: %w", err)
	}

	var update models.UserUpdate

	if input.FullName.Set {
		name := strings.TrimSpace(input.FullName.Value)
		if name == "" {
			return models.User{}, invalidInput("full name cannot be empty")
		}
		update.FullName = &name
	}
	if input.Phone.Set {
		phone := strings.TrimSpace(input.Phone.Value)
		if phone == "" {
			return models.User{}, invalidInput("phone cannot be empty")
		}
		update.Phone = &phone
	}
	if input.Login.Set {
		login := strings.TrimSpace(input.Login.Value)
		if utf8.RuneCountInString(login) < minLoginLength {
			return models.User{}, invalidInput("login must be at least %d characters long", minLoginLength)
		}
		if login != current.Login {
			update.Login = &login
		}
	}
	if input.Password.Set {
		password := strings.TrimSpace(input.Password.Value)
		if utf8.RuneCountInString(password) < minPasswordLength {
			return models.User{}, invalidInput("password must be at least %d characters long", minPasswordLength)
		}
		hash, err := utils.HashPassword(password, s.bcryptCost)
		if err != nil {
			log.Err(err).Str("func", "userService.UpdateUser").Msg("failed to hash password")
			return models.User{}, err
		}
		update.Password = &hash
	}
	if input.Role.Set {
		role, ok := models.ParseRole(input.Role.Value)
		if !ok {
			return models.User{}, invalidInput("unknown user_type %q", input.Role.Value)
		}
		if role != current.Role {
			if !isManager {
				return models.User{}, forbiddenRole(caller, UserAdminRoles...)
			}
			update.Role = &role
		}
	}

	if update.IsEmpty() {
		return current, nil
	}

	updated, err := s.userRepository.UpdateUser(ctx, userID, update)
	if err != nil {
		log.Err(err).Str("func", "userService.UpdateUser").Int64("user_id", userID).Msg("user update ended with error")
		return models.User{}, fmt.Errorf("update user: %w", err)
	}

	log.Info().
		Str("func", "userService.UpdateUser").
		Int64("user_id", userID).
		Int64("updated_by", caller.UserID).
		Msg("user updated")
	return updated, nil
}

// DeleteUser removes an account. Only managers may call it, and never for
// their own account.
func (s *userService) DeleteUser(ctx context.Context, caller models.Caller, userID int64) error {
	log := logger.FromContext(ctx)

	if caller.UserID == userID {
		return ErrSelfDeleteForbidden
	}
	if err := requireRole(caller, UserAdminRoles...); err != nil {
		return err
	}

	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Str("func", "userService.DeleteUser").Int64("user_id", userID).Msg("user deletion ended with error")
		return fmt.Errorf("delete user: %w", err)
	}

	log.Info().
		Str("func", "userService.DeleteUser").
		Int64("user_id", userID).
		Int64("deleted_by", caller.UserID).
		Msg("user deleted")
	return nil
}

func validateCredentials(login, password string) error {
	if utf8.RuneCountInString(login) < minLoginLength {
		return invalidInput("login must be at least %d characters long", minLoginLength)
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return invalidInput("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}
