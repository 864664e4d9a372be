// Package id generates identifiers for requests, sessions and handoff slots.
// UUIDv7 is time-ordered, so ids sort by creation time in logs.
package id

import (
	"github.com/google/uuid"
)

// ID is a type alias for UUID.
type ID = uuid.UUID

// New generates a new UUIDv7 (time-ordered UUID).
func New() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to V4 if V7 fails (should never happen)
		return uuid.New()
	}
	return id
}

// NewString generates a UUIDv7 in its canonical text form.
func NewString() string {
	return New().String()
}

// Parse converts string to ID with validation.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// Valid reports whether s is a well-formed UUID.
// Client-supplied session ids are checked with it before use as store keys.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
