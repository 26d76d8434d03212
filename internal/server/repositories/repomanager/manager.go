package repomanager

import (
	"context"

	"github.com/dmitrijs2005/bookreviews/internal/server/repositories/books"
	"github.com/dmitrijs2005/bookreviews/internal/server/repositories/reviews"
	"github.com/dmitrijs2005/bookreviews/internal/server/repositories/users"
)

// Repositories is a set of repositories bound to one connection or transaction.
type Repositories interface {
	Users() users.Repository
	Books() books.Repository
	Reviews() reviews.Repository
}

// RepositoryManager owns the store's lifecycle and vends repositories.
type RepositoryManager interface {
	Repositories
	RunMigrations(ctx context.Context) error
	// WithTx runs fn with repositories bound to one transaction.
	WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	Ping(ctx context.Context) error
	Close() error
}
