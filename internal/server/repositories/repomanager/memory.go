package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/bookreviews/internal/server/repositories/books"
	"github.com/dmitrijs2005/bookreviews/internal/server/repositories/memory"
	"github.com/dmitrijs2005/bookreviews/internal/server/repositories/reviews"
	"github.com/dmitrijs2005/bookreviews/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory.
//
// WithTx serializes callers but does not roll back: writes made before fn
// fails stay visible.
type InMemoryRepositoryManager struct {
	txMu    sync.Mutex
	users   *memory.UsersRepository
	books   *memory.BooksRepository
	reviews *memory.ReviewsRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	db := memory.NewDB()
	return &InMemoryRepositoryManager{
		users:   memory.NewUsersRepository(db),
		books:   memory.NewBooksRepository(db),
		reviews: memory.NewReviewsRepository(db),
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository     { return m.users }
func (m *InMemoryRepositoryManager) Books() books.Repository     { return m.books }
func (m *InMemoryRepositoryManager) Reviews() reviews.Repository { return m.reviews }

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, m)
}

func (m *InMemoryRepositoryManager) Ping(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}
