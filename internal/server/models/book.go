package models

import "time"

// Book is a catalog entry. CreatedBy is empty when the creating account has
// been deleted.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	CreatedBy     string    `json:"created_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	AverageRating float64   `json:"average_rating"`
}

// BookFilter narrows a book listing. Genre and Author are case-insensitive
// substring matches; empty means no filter.
type BookFilter struct {
	Genre  string
	Author string
	Offset int
	Limit  int
}

// BookPage is one page of a book listing.
type BookPage struct {
	Books []Book
	Total int
}
