// Package models defines server-side data models persisted in the store.
package models

// Identity is the authenticated caller as resolved for a single request.
type Identity struct {
	ID       string `json:"id"`
	UserName string `json:"username"`
	Email    string `json:"email"`
}
