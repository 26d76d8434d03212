package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/dmitrijs2005/bookreviews/internal/common"
	"github.com/dmitrijs2005/bookreviews/internal/server/models"
)

type BooksRepository struct {
	db *DB
}

func NewBooksRepository(db *DB) *BooksRepository {
	return &BooksRepository{db: db}
}

func (r *BooksRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, b := range r.db.books {
		if b.Title == book.Title && b.Author == book.Author {
			return nil, common.ErrDuplicateBook
		}
	}
	if book.CreatedBy != "" {
		if _, ok := r.db.users[book.CreatedBy]; !ok {
			return nil, common.ErrorNotFound
		}
	}

	var seq int64
	book.ID, seq = r.db.next()
	book.CreatedAt = r.db.now()
	book.AverageRating = 0
	r.db.books[book.ID] = &bookRow{Book: *book, seq: seq}

	out := *book
	return &out, nil
}

func (r *BooksRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	b, ok := r.db.books[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := b.Book
	out.AverageRating = r.db.averageRating(id)
	return &out, nil
}

func (r *BooksRepository) ExistsByTitleAndAuthor(ctx context.Context, title, author string) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, b := range r.db.books {
		if b.Title == title && b.Author == author {
			return true, nil
		}
	}
	return false, nil
}

func (r *BooksRepository) List(ctx context.Context, filter models.BookFilter) (*models.BookPage, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	genre := strings.ToLower(filter.Genre)
	author := strings.ToLower(filter.Author)

	matched := make([]*bookRow, 0, len(r.db.books))
	for _, b := range r.db.books {
		if genre != "" && !strings.Contains(strings.ToLower(b.Genre), genre) {
			continue
		}
		if author != "" && !strings.Contains(strings.ToLower(b.Author), author) {
			continue
		}
		matched = append(matched, b)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq > matched[j].seq })

	page := &models.BookPage{Books: []models.Book{}, Total: len(matched)}
	if filter.Offset >= len(matched) {
		return page, nil
	}
	end := len(matched)
	if filter.Limit > 0 && filter.Offset+filter.Limit < end {
		end = filter.Offset + filter.Limit
	}
	for _, b := range matched[filter.Offset:end] {
		out := b.Book
		out.AverageRating = r.db.averageRating(b.ID)
		page.Books = append(page.Books, out)
	}
	return page, nil
}

// Delete removes the book and its reviews.
func (r *BooksRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.books[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.db.books, id)
	for rid, rv := range r.db.reviews {
		if rv.BookID == id {
			delete(r.db.reviews, rid)
		}
	}
	return nil
}
