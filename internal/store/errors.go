// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when a user insert or update collides
	// with an existing login.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrUserNotFound is returned when no user matches the given id or login.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserIsReferenced is returned when a user cannot be deleted because
	// repair requests or comments still point at it.
	ErrUserIsReferenced = errors.New("user is referenced by repair requests or comments")

	// ErrRequestNotFound is returned when no repair request matches the id.
	ErrRequestNotFound = errors.New("repair request not found")

	// ErrCommentNotFound is returned when no comment matches the id.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrReferenceNotFound is returned when an insert or update points at a
	// user or request that does not exist.
	ErrReferenceNotFound = errors.New("referenced record does not exist")

	// ErrConstraintViolation is returned when a CHECK constraint rejects the
	// written values.
	ErrConstraintViolation = errors.New("constraint violation")
)

// Low-level database operation errors. These are wrapped by repository
// methods when a SQL-level operation fails before any domain logic can be
// applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan row")
)
