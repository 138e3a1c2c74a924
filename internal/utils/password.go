// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// legacyPasswordMaxLen is the length up to which a stored credential cannot
// be a bcrypt hash and is treated as legacy plaintext.
const legacyPasswordMaxLen = 20

// HashPassword returns the bcrypt hash of password at the given cost.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

// PasswordMatch is the outcome of comparing a password with its stored
// credential.
type PasswordMatch int

const (
	PasswordMismatch PasswordMatch = iota
	// PasswordMatchHash means the stored value is a hash of the password.
	PasswordMatchHash
	// PasswordMatchPlaintext means the stored value is the password itself
	// and is not a hash, so it should be re-hashed.
	PasswordMatchPlaintext
	// PasswordMatchStoredHash means the password equals a stored bcrypt hash
	// verbatim. The stored value must not be re-hashed.
	PasswordMatchStoredHash
)

// ComparePassword checks password against stored.
//
// A stored value longer than 20 characters is first compared as a bcrypt
// hash. If that fails, or the value is short, and allowPlaintext is set, the
// stored value is compared for equality as legacy plaintext. Equality with a
// value that parses as a bcrypt hash is reported as [PasswordMatchStoredHash].
func ComparePassword(stored, password string, allowPlaintext bool) PasswordMatch {
	if len(stored) > legacyPasswordMaxLen {
		if bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil {
			return PasswordMatchHash
		}
	}

	if allowPlaintext && stored != "" && stored == password {
		if isBcryptHash(stored) {
			return PasswordMatchStoredHash
		}
		return PasswordMatchPlaintext
	}

	return PasswordMismatch
}

func isBcryptHash(stored string) bool {
	_, err := bcrypt.Cost([]byte(stored))
	return err == nil
}
