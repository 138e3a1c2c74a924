// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strings"
)

// Status is the workflow state of a repair request.
type Status string

const (
	StatusNew            Status = "New"
	StatusInRepair       Status = "In repair"
	StatusAwaitingParts  Status = "Awaiting parts"
	StatusReadyForPickup Status = "Ready for pickup"
)

var legacyStatuses = map[string]Status{
	"Новая заявка":           StatusNew,
	"В процессе ремонта":     StatusInRepair,
	"Ожидание комплектующих": StatusAwaitingParts,
	"Готова к выдаче":        StatusReadyForPickup,
}

// transitions lists the statuses reachable from each known status. Moving a
// request to the status it already has is always allowed and not listed.
var transitions = map[Status][]Status{
	StatusNew:            {StatusInRepair, StatusAwaitingParts, StatusReadyForPickup},
	StatusInRepair:       {StatusAwaitingParts, StatusReadyForPickup},
	StatusAwaitingParts:  {StatusInRepair, StatusReadyForPickup},
	StatusReadyForPickup: {StatusInRepair},
}

// Statuses returns every known status in workflow order.
func Statuses() []Status {
	return []Status{StatusNew, StatusInRepair, StatusAwaitingParts, StatusReadyForPickup}
}

// ParseStatus resolves s to a canonical status, accepting legacy spellings.
// Names match exactly apart from surrounding spaces. The second result is
// false when s names no known status.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses() {
		if s == string(st) {
			return st, true
		}
	}
	if st, ok := legacyStatuses[s]; ok {
		return st, true
	}

	return Status(s), false
}

// IsKnown reports whether s is one of the canonical statuses.
func (s Status) IsKnown() bool {
	_, ok := transitions[s]
	return ok
}

// IsCompleted reports whether a request in status s counts as completed.
func (s Status) IsCompleted() bool {
	return s == StatusReadyForPickup
}

// CanTransitionTo reports whether a request may move from s to next.
// Rows imported with a status outside the vocabulary may move to any known
// status so they can be repaired.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.IsKnown() {
		return false
	}
	if s == next || !s.IsKnown() {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Aliases returns every stored spelling that resolves to s, the canonical
// name first.
func (s Status) Aliases() []string {
	aliases := []string{string(s)}
	for legacy, st := range legacyStatuses {
		if st == s {
			aliases = append(aliases, legacy)
		}
	}
	sort.Strings(aliases[1:])
	return aliases
}

// Scan implements sql.Scanner and normalizes legacy spellings.
func (s *Status) Scan(src any) error {
	v, err := scanString(src)
	if err != nil {
		return err
	}
	*s, _ = ParseStatus(v)
	return nil
}

// Value implements driver.Valuer.
func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}

func scanString(src any) (string, error) {
	switch v := src.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("cannot scan %T into string", src)
	}
}
