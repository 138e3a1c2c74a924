// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"sort"
	"strings"
)

// Role is the user_type of an account. It decides which operations the
// account is allowed to perform.
type Role string

const (
	RoleClient         Role = "Client"
	RoleOperator       Role = "Operator"
	RoleSpecialist     Role = "Specialist"
	RoleManager        Role = "Manager"
	RoleQualityManager Role = "Quality Manager"
)

// legacyRoles maps role spellings found in imported databases to the
// canonical roles.
var legacyRoles = map[string]Role{
	"Заказчик":             RoleClient,
	"Оператор":             RoleOperator,
	"Специалист":           RoleSpecialist,
	"Менеджер":             RoleManager,
	"Менеджер по качеству": RoleQualityManager,
}

// Roles returns every known role in a stable order.
func Roles() []Role {
	return []Role{RoleClient, RoleOperator, RoleSpecialist, RoleManager, RoleQualityManager}
}

// ParseRole resolves s to a canonical role. Canonical names are matched
// case-insensitively, legacy spellings exactly. The second result is false
// when s names no known role; the trimmed input is returned as-is then.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for _, r := range Roles() {
		if strings.EqualFold(s, string(r)) {
			return r, true
		}
	}
	if r, ok := legacyRoles[s]; ok {
		return r, true
	}

	return Role(s), false
}

// IsKnown reports whether r is one of the canonical roles.
func (r Role) IsKnown() bool {
	for _, known := range Roles() {
		if r == known {
			return true
		}
	}
	return false
}

// Aliases returns every stored spelling that resolves to r, the canonical
// name first.
func (r Role) Aliases() []string {
	aliases := []string{string(r)}
	for legacy, role := range legacyRoles {
		if role == r {
			aliases = append(aliases, legacy)
		}
	}
	sort.Strings(aliases[1:])
	return aliases
}

// In reports whether r is contained in roles.
func (r Role) In(roles ...Role) bool {
	for _, allowed := range roles {
		if r == allowed {
			return true
		}
	}
	return false
}

// Scan implements sql.Scanner. Legacy spellings are normalized on read;
// unknown values are kept verbatim so they match no authorization rule.
func (r *Role) Scan(src any) error {
	s, err := scanString(src)
	if err != nil {
		return err
	}
	*r, _ = ParseRole(s)
	return nil
}

// Value implements driver.Valuer.
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}
