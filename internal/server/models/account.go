// Package models contains the persisted entities of the auth service.
package models

import "time"

// Account is the identity record behind a set of credentials.
//
// PasswordHash is the base64-encoded salt‖hash digest produced by the
// password hasher; a plaintext password is never stored. Email is stored
// lower-cased so uniqueness is case-insensitive.
//
// FailedAttempts and LockedUntil carry the sign-in lockout state. A zero
// LockedUntil means the account is not locked.
type Account struct {
	ID              string
	Email           string
	PasswordHash    string
	PhoneNumber     string
	IsEmailVerified bool
	PhotoID         string
	FailedAttempts  int
	LockedUntil     time.Time
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedBy       string
	UpdatedAt       time.Time
}
