// Package common defines shared constants and sentinel errors used across
// client and server layers of the book review service. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrDuplicateBook = errors.New("a book with this title and author already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")

	// Validation errors. Field details are wrapped around this value.
	ErrValidation = errors.New("validation error")

	// Credential errors. Unknown account and wrong password share one value.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Gate errors.
	ErrNoToken          = errors.New("no token provided")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token expired")
	ErrIdentityNotFound = errors.New("user not found")

	// Configuration errors. Fatal to the call, not to the process.
	ErrMissingSecret = errors.New("signing secret is not configured")
)
