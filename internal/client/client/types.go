package client

import "time"

type User struct {
	ID       string `json:"id"`
	UserName string `json:"username"`
	Email    string `json:"email"`
}

type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	AverageRating float64   `json:"average_rating"`
}

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

type Pagination struct {
	TotalBooks  int `json:"total_books"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	Limit       int `json:"limit"`
}

type BookList struct {
	Books      []Book     `json:"books"`
	Pagination Pagination `json:"pagination"`
}

type BookDetails struct {
	Book    Book     `json:"book"`
	Reviews []Review `json:"reviews"`
}

// BookQuery filters a book listing; zero values are omitted.
type BookQuery struct {
	Page   int
	Limit  int
	Genre  string
	Author string
}

// ReviewPatch is a partial review update; nil fields are not sent.
type ReviewPatch struct {
	ReviewText *string `json:"review_text,omitempty"`
	Rating     *int    `json:"rating,omitempty"`
}
