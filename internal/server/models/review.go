package models

import "time"

// Review is a rating with text left by a user on a book. ReviewerID and
// BookID are fixed at creation.
type Review struct {
	ID               string    `json:"id"`
	BookID           string    `json:"book_id"`
	ReviewerID       string    `json:"reviewer_id"`
	ReviewerUserName string    `json:"reviewer_username,omitempty"`
	ReviewText       string    `json:"review_text"`
	Rating           int       `json:"rating"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
