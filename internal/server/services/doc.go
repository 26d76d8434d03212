// Package services implements the book review operations on top of the
// repository manager. Protected operations read the caller's identity from
// the context populated by auth.Gate and fail with common.ErrorUnauthorized
// when it is absent.
package services
