package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookreviews/internal/common"
	"github.com/dmitrijs2005/bookreviews/internal/server/models"
)

// UserLookup is the part of the credential store the resolver needs.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// StoreResolver turns verified claims into the live account they name.
type StoreResolver struct {
	users UserLookup
}

func NewStoreResolver(users UserLookup) *StoreResolver {
	return &StoreResolver{users: users}
}

// Resolve loads the account by the token subject. Username and email come
// from the store, not from the token.
func (r *StoreResolver) Resolve(ctx context.Context, claims *Claims) (models.Identity, error) {
	user, err := r.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.Identity{}, common.ErrIdentityNotFound
		}
		return models.Identity{}, fmt.Errorf("resolve identity: %w", err)
	}
	return user.Identity(), nil
}
