package auth

import "github.com/dmitrijs2005/bookreviews/internal/server/models"

// CanMutate reports whether identity owns a resource owned by ownerID.
func CanMutate(identity models.Identity, ownerID string) bool {
	return identity.ID != "" && identity.ID == ownerID
}

// BookPolicy names who may delete a book.
type BookPolicy string

const (
	BookPolicyAuthenticated BookPolicy = "authenticated"
	BookPolicyCreator       BookPolicy = "creator"
)

// Valid reports whether p is one of the known policies.
func (p BookPolicy) Valid() bool {
	switch p {
	case BookPolicyAuthenticated, BookPolicyCreator:
		return true
	}
	return false
}

// CanDeleteBook applies p. Under BookPolicyCreator a book without a recorded
// creator cannot be deleted. Unknown policies deny.
func (p BookPolicy) CanDeleteBook(identity models.Identity, book *models.Book) bool {
	switch p {
	case BookPolicyAuthenticated:
		return identity.ID != ""
	case BookPolicyCreator:
		return book.CreatedBy != "" && CanMutate(identity, book.CreatedBy)
	default:
		return false
	}
}
