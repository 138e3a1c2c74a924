// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a session token. Authorization decisions are made
// from these values as they were at issuance; the directory is not re-read
// on every request.
type Claims struct {
	// RegisteredClaims carries sub (user id), iss, iat and exp.
	jwt.RegisteredClaims

	Login    string `json:"login"`
	FullName string `json:"full_name"`
	Role     Role   `json:"user_type"`
}

// NewClaimsForUser builds the custom part of the claims from a user record.
// Registered claims are filled in by the token issuer.
func NewClaimsForUser(user User) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: strconv.FormatInt(user.UserID, 10),
		},
		Login:    user.Login,
		FullName: user.FullName,
		Role:     user.Role,
	}
}

// GetUserID extracts the user identifier from the token's "sub" (subject) claim,
// parses it as a base-10 int64, and returns the result.
func (c *Claims) GetUserID() (int64, error) {
	userIDString, err := c.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// Token is a signed session token together with the claims it carries.
type Token struct {
	// Claims are the verified claims of the token.
	Claims Claims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// Caller is the authenticated identity on whose behalf a service operation
// runs. It is derived from verified token claims.
type Caller struct {
	UserID int64
	Login  string
	Role   Role
}

// CallerFromClaims converts verified claims into a Caller.
func CallerFromClaims(c *Claims) (Caller, error) {
	id, err := c.GetUserID()
	if err != nil {
		return Caller{}, err
	}

	return Caller{UserID: id, Login: c.Login, Role: c.Role}, nil
}
