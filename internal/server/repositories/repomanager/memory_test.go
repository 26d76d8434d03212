package repomanager

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/bookreviews/internal/common"
	"github.com/dmitrijs2005/bookreviews/internal/server/models"
)

func TestInMemoryManager_WithTxSharesState(t *testing.T) {
	var m RepositoryManager = NewInMemoryRepositoryManager()
	ctx := context.Background()

	if err := m.RunMigrations(ctx); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	err := m.WithTx(ctx, func(ctx context.Context, repos Repositories) error {
		_, err := repos.Users().Create(ctx, &models.User{UserName: "alice", Email: "a@example.com"})
		return err
	})
	if err != nil {
		t.Fatalf("WithTx: %v", err)
	}

	if _, err := m.Users().GetByEmail(ctx, "a@example.com"); err != nil {
		t.Fatalf("user not visible after tx: %v", err)
	}

	err = m.WithTx(ctx, func(ctx context.Context, repos Repositories) error {
		_, err := repos.Users().Create(ctx, &models.User{UserName: "alice", Email: "b@example.com"})
		return err
	})
	if !errors.Is(err, common.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}
