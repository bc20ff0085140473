// Package common defines shared constants and sentinel errors used across
// the auth service layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound         = errors.New("not found")
	ErrorDuplicateAccount = errors.New("account already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")

	// Credential errors. ErrorInvalidCredentials covers both an unknown email
	// and a wrong password so the two outcomes are indistinguishable to callers.
	ErrorInvalidCredentials = errors.New("invalid email or password")
	ErrorPasswordMismatch   = errors.New("passwords do not match")
	ErrorEmailNotVerified   = errors.New("email not verified")
	ErrorAccountLocked      = errors.New("account temporarily locked")

	// Auth errors. Every token validation failure collapses to this single
	// value so callers cannot tell which check failed.
	ErrInvalidToken = errors.New("invalid token")
)
