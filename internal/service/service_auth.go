// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-repair-desk/internal/config"
	"github.com/MKhiriev/go-repair-desk/internal/logger"
	"github.com/MKhiriev/go-repair-desk/internal/store"
	"github.com/MKhiriev/go-repair-desk/internal/utils"
	"github.com/MKhiriev/go-repair-desk/models"
)

// authService is the concrete implementation of AuthService.
// It verifies passwords against bcrypt hashes (and, while enabled, legacy
// plaintext values) and signs HS256 session tokens.
type authService struct {
	// userRepository is the data-access layer used to look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// bcryptCost is used when a legacy plaintext password is re-hashed.
	bcryptCost int

	// allowPlaintext enables the comparison against legacy plaintext
	// passwords.
	allowPlaintext bool

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		bcryptCost:     cfg.BcryptCost,
		allowPlaintext: !cfg.DisableLegacyPasswords,
		now:            time.Now,
		logger:         logger,
	}
}

// Login authenticates a user by login and password and issues a token.
//
// Returns:
//   - ErrInvalidInput if login or password is blank.
//   - ErrInvalidCredentials for an unknown login or a wrong password.
//
// A successful match against a legacy plaintext password re-hashes the
// stored value. Failure to do so is logged and does not fail the login. A
// stored value that already is a bcrypt hash is never re-hashed.
func (a *authService) Login(ctx context.Context, login, password string) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	login = strings.TrimSpace(login)
	if login == "" || strings.TrimSpace(password) == "" {
		return models.User{}, models.Token{}, invalidInput("login and password are required")
	}

	user, err := a.userRepository.GetUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Warn().Str("func", "authService.Login").Str("login", login).Msg("unknown login")
			return models.User{}, models.Token{}, ErrInvalidCredentials
		}
		log.Err(err).Str("func", "authService.Login").Str("login", login).Msg("user search by login failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by login failed: %w", err)
	}

	switch utils.ComparePassword(user.Password, password, a.allowPlaintext) {
	case utils.PasswordMismatch:
		log.Warn().Str("func", "authService.Login").Int64("user_id", user.UserID).Msg("wrong password")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	case utils.PasswordMatchPlaintext:
		a.upgradePassword(ctx, user.UserID, password)
	}

	token, err := a.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Int64("user_id", user.UserID).Msg("creation of token failed")
		return models.User{}, models.Token{}, err
	}

	log.Info().Str("func", "authService.Login").Int64("user_id", user.UserID).Msg("user logged in")
	return user, token, nil
}

func (a *authService) upgradePassword(ctx context.Context, userID int64, password string) {
	log := logger.FromContext(ctx)

	hash, err := utils.HashPassword(password, a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "authService.upgradePassword").Int64("user_id", userID).Msg("failed to hash legacy password")
		return
	}

	if _, err = a.userRepository.UpdateUser(ctx, userID, models.UserUpdate{Password: &hash}); err != nil {
		log.Err(err).Str("func", "authService.upgradePassword").Int64("user_id", userID).Msg("failed to store re-hashed password")
		return
	}

	log.Info().Str("func", "authService.upgradePassword").Int64("user_id", userID).Msg("legacy password re-hashed")
}

// CreateToken issues a signed JWT for the given user.
//
// The token carries the user's id, login, full name and role and expires
// after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, models.NewClaimsForUser(user), a.now(), a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Expired tokens yield ErrTokenIsExpired; any other validation failure
// (signature, issuer, structure) yields ErrTokenIsInvalid.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, jwt.WithTimeFunc(a.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenIsExpired
		}
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsInvalid, err)
	}

	return token, nil
}

// RefreshToken re-validates tokenString, re-reads the user it was issued for
// and issues a fresh token with the user's current claims.
func (a *authService) RefreshToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(tokenString) == "" {
		return models.Token{}, invalidInput("token is required")
	}

	token, err := a.ParseToken(ctx, tokenString)
	if err != nil {
		log.Err(err).Str("func", "authService.RefreshToken").Msg("refresh with unusable token")
		return models.Token{}, err
	}

	userID, err := token.Claims.GetUserID()
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsInvalid, err)
	}

	user, err := a.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "authService.RefreshToken").Int64("user_id", userID).Msg("user of token could not be loaded")
		return models.Token{}, fmt.Errorf("refresh token: %w", err)
	}

	return a.CreateToken(ctx, user)
}
