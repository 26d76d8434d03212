package reviews

import (
	"context"

	"github.com/dmitrijs2005/bookreviews/internal/server/models"
)

// Repository stores reviews. Reads fill ReviewerUserName from the owning
// account. Create reports a missing book or reviewer as common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	GetByID(ctx context.Context, id string) (*models.Review, error)
	ListByBook(ctx context.Context, bookID string) ([]models.Review, error)
	Update(ctx context.Context, review *models.Review) (*models.Review, error)
	Delete(ctx context.Context, id string) error
}
