package users

import (
	"context"

	"github.com/dmitrijs2005/bookreviews/internal/server/models"
)

// Repository is the credential store. Implementations enforce uniqueness of
// both UserName and Email and report collisions as common.ErrAlreadyExists;
// missing rows are common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByUserNameOrEmail(ctx context.Context, userName, email string) (bool, error)
	Delete(ctx context.Context, id string) error
}
