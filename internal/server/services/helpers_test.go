package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookreviews/internal/logging"
	"github.com/dmitrijs2005/bookreviews/internal/server/auth"
	"github.com/dmitrijs2005/bookreviews/internal/server/models"
	"github.com/dmitrijs2005/bookreviews/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type env struct {
	repos    *repomanager.InMemoryRepositoryManager
	codec    *auth.TokenCodec
	accounts *AccountService
	books    *BookService
	reviews  *ReviewService
}

func newEnv(t *testing.T, policy auth.BookPolicy) *env {
	t.Helper()
	repos := repomanager.NewInMemoryRepositoryManager()
	codec := auth.NewTokenCodec("test-secret", time.Hour)
	log := logging.NewDiscard()

	accounts, err := NewAccountService(repos, auth.NewBcryptHasher(bcrypt.MinCost), codec, log)
	require.NoError(t, err)

	return &env{
		repos:    repos,
		codec:    codec,
		accounts: accounts,
		books:    NewBookService(repos, policy, log),
		reviews:  NewReviewService(repos, log),
	}
}

// signup registers a user and returns a context carrying their identity.
func (e *env) signup(t *testing.T, name string) context.Context {
	t.Helper()
	res, err := e.accounts.Register(context.Background(), RegisterInput{
		UserName: name,
		Email:    name + "@example.com",
		Password: "pw-" + name,
	})
	require.NoError(t, err)
	return auth.WithIdentity(context.Background(), res.User)
}

func (e *env) addBook(t *testing.T, ctx context.Context, title string) *models.Book {
	t.Helper()
	b, err := e.books.Create(ctx, BookInput{Title: title, Author: "Author of " + title, Genre: "fiction"})
	require.NoError(t, err)
	return b
}
