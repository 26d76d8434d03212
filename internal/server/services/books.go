package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/dmitrijs2005/bookreviews/internal/common"
	"github.com/dmitrijs2005/bookreviews/internal/logging"
	"github.com/dmitrijs2005/bookreviews/internal/server/auth"
	"github.com/dmitrijs2005/bookreviews/internal/server/models"
	"github.com/dmitrijs2005/bookreviews/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type BookInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Genre  string `json:"genre"`
}

func (in BookInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Title, validation.Required),
		validation.Field(&in.Author, validation.Required),
		validation.Field(&in.Genre, validation.Required),
	)
}

// ListBooksInput selects a page of books. Zero Page and Limit take defaults.
type ListBooksInput struct {
	Page   int
	Limit  int
	Genre  string
	Author string
}

type Pagination struct {
	TotalBooks  int `json:"total_books"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
	Limit       int `json:"limit"`
}

type BookList struct {
	Books      []models.Book `json:"books"`
	Pagination Pagination    `json:"pagination"`
}

type BookDetails struct {
	Book    *models.Book    `json:"book"`
	Reviews []models.Review `json:"reviews"`
}

type BookService struct {
	repos  repomanager.RepositoryManager
	policy auth.BookPolicy
	log    logging.Logger
}

func NewBookService(repos repomanager.RepositoryManager, policy auth.BookPolicy, log logging.Logger) *BookService {
	return &BookService{repos: repos, policy: policy, log: log.With("module", "books")}
}

// Create adds a book on behalf of the caller. A title+author pair already in
// the catalog yields common.ErrDuplicateBook.
func (s *BookService) Create(ctx context.Context, in BookInput) (*models.Book, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}

	var book *models.Book
	err = s.repos.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		exists, err := repos.Books().ExistsByTitleAndAuthor(ctx, in.Title, in.Author)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrDuplicateBook
		}
		book, err = repos.Books().Create(ctx, &models.Book{
			Title:     in.Title,
			Author:    in.Author,
			Genre:     in.Genre,
			CreatedBy: caller.ID,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateBook) {
			return nil, common.ErrDuplicateBook
		}
		return nil, fmt.Errorf("error creating book: %w", err)
	}

	s.log.Info(ctx, "book created", "book_id", book.ID, "user_id", caller.ID)
	return book, nil
}

func (s *BookService) List(ctx context.Context, in ListBooksInput) (*BookList, error) {
	if _, err := callerFrom(ctx); err != nil {
		return nil, err
	}

	page, limit := in.Page, in.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	result, err := s.repos.Books().List(ctx, models.BookFilter{
		Genre:  in.Genre,
		Author: in.Author,
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("error listing books: %w", err)
	}

	for i := range result.Books {
		result.Books[i].AverageRating = roundRating(result.Books[i].AverageRating)
	}

	return &BookList{
		Books: result.Books,
		Pagination: Pagination{
			TotalBooks:  result.Total,
			TotalPages:  (result.Total + limit - 1) / limit,
			CurrentPage: page,
			Limit:       limit,
		},
	}, nil
}

// Get returns the book with its reviews, newest first.
func (s *BookService) Get(ctx context.Context, id string) (*BookDetails, error) {
	if _, err := callerFrom(ctx); err != nil {
		return nil, err
	}

	book, err := s.repos.Books().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	book.AverageRating = roundRating(book.AverageRating)

	reviews, err := s.repos.Reviews().ListByBook(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error listing reviews: %w", err)
	}

	return &BookDetails{Book: book, Reviews: reviews}, nil
}

// Delete removes a book and its reviews if the book policy allows the caller
// to.
func (s *BookService) Delete(ctx context.Context, id string) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	return s.repos.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		book, err := repos.Books().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !s.policy.CanDeleteBook(caller, book) {
			return common.ErrForbidden
		}
		if err := repos.Books().Delete(ctx, id); err != nil {
			return err
		}
		s.log.Info(ctx, "book deleted", "book_id", id, "user_id", caller.ID)
		return nil
	})
}

func roundRating(v float64) float64 {
	return math.Round(v*100) / 100
}
