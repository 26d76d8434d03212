package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookreviews/internal/common"
	"github.com/dmitrijs2005/bookreviews/internal/server/auth"
	"github.com/dmitrijs2005/bookreviews/internal/server/models"
)

// invalid wraps ozzo validation output so it matches common.ErrValidation and
// still carries the per-field detail.
func invalid(err error) error {
	return fmt.Errorf("%w: %v", common.ErrValidation, err)
}

func callerFrom(ctx context.Context) (models.Identity, error) {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok || id.ID == "" {
		return models.Identity{}, common.ErrorUnauthorized
	}
	return id, nil
}
