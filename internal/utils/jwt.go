// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-repair-desk/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token carrying claims.
//
// The registered claims are set as follows:
//   - Issuer    (iss): issuer
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus tokenDuration
//
// The subject and the custom claims are taken from claims as-is.
// Returns an error if issuer, tokenDuration or signKey is empty or zero, or
// if claims carry no subject.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("repair-desk", models.NewClaimsForUser(u), time.Now(), 24*time.Hour, "secret")
func GenerateJWTToken(issuer string, claims models.Claims, now time.Time, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}
	if claims.Subject == "" {
		return models.Token{}, errors.New("empty subject for JWT Token")
	}

	claims.Issuer = issuer
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(tokenDuration))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{Claims: claims, SignedString: tokenString}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - HS256 signature verification using the provided sign key
//   - Issuer (iss) claim check against tokenIssuer
//   - Expiration (exp) claim check, using the parser's clock
//   - Subject (sub) claim presence and conversion to int64
//
// Extra parser options (e.g. jwt.WithTimeFunc) are passed through.
// Expired tokens yield an error matching jwt.ErrTokenExpired.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string, opts ...jwt.ParserOption) (models.Token, error) {
	opts = append(opts,
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	claims := &models.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, opts...)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Token{}, errors.New("empty subject error")
	}
	if _, err := strconv.ParseInt(claims.Subject, 10, 64); err != nil {
		return models.Token{}, fmt.Errorf("error occurred during converting subject to user id: %w", err)
	}

	return models.Token{Claims: *claims, SignedString: tokenString}, nil
}
