package models

import "time"

// User is a stored account. PasswordHash never leaves the server package
// boundary; use Identity for anything exposed to callers.
type User struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity returns the public projection of u.
func (u *User) Identity() Identity {
	return Identity{ID: u.ID, UserName: u.UserName, Email: u.Email}
}
