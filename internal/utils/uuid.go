// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import "github.com/google/uuid"

// UUIDGenerator produces request trace identifiers. The zero value is ready
// to use.
type UUIDGenerator struct{}

// Generate returns a time-ordered UUIDv7, falling back to a random UUIDv4.
func (UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
