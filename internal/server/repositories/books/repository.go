package books

import (
	"context"

	"github.com/dmitrijs2005/bookreviews/internal/server/models"
)

// Repository stores catalog entries. A title+author pair is unique; a
// collision is reported as common.ErrDuplicateBook. AverageRating is the raw
// mean of the book's review ratings (0 when there are none).
type Repository interface {
	Create(ctx context.Context, book *models.Book) (*models.Book, error)
	GetByID(ctx context.Context, id string) (*models.Book, error)
	ExistsByTitleAndAuthor(ctx context.Context, title, author string) (bool, error)
	List(ctx context.Context, filter models.BookFilter) (*models.BookPage, error)
	Delete(ctx context.Context, id string) error
}
