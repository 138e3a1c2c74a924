// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// User represents an account of the repair desk: a client owning repair
// requests or a staff member handling them.
type User struct {
	// UserID is the system-assigned identifier.
	UserID int64 `json:"user_id" db:"user_id"`

	// FullName is the display name shown to staff and clients.
	FullName string `json:"full_name" db:"full_name"`

	// Phone is a free-form contact number.
	Phone string `json:"phone" db:"phone"`

	// Login is the unique sign-in name, at least three characters long.
	Login string `json:"login" db:"login"`

	// Password stores the bcrypt hash of the user's password. Rows imported
	// from older installations may still hold plaintext; such values are
	// re-hashed on the next successful sign-in.
	// It is never serialized.
	Password string `json:"-" db:"password"`

	// Role decides which operations the account may perform.
	Role Role `json:"user_type" db:"user_type"`
}

// CreateUserInput carries the fields accepted when a manager registers a
// new account.
type CreateUserInput struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Login    string `json:"login"`
	Password string `json:"password"`
	Role     string `json:"user_type"`
}

// UpdateUserInput is a partial update of a user. Absent fields are left
// untouched.
type UpdateUserInput struct {
	FullName Optional[string] `json:"full_name"`
	Phone    Optional[string] `json:"phone"`
	Login    Optional[string] `json:"login"`
	Password Optional[string] `json:"password"`
	Role     Optional[string] `json:"user_type"`
}

// UserUpdate is the validated change set handed to the store. Nil fields
// are not written.
type UserUpdate struct {
	FullName *string
	Phone    *string
	Login    *string
	Password *string
	Role     *Role
}

// IsEmpty reports whether the change set touches no column.
func (u UserUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Phone == nil && u.Login == nil && u.Password == nil && u.Role == nil
}
