package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/bookreviews/internal/common"
	"github.com/dmitrijs2005/bookreviews/internal/server/models"
)

type ReviewsRepository struct {
	db *DB
}

func NewReviewsRepository(db *DB) *ReviewsRepository {
	return &ReviewsRepository{db: db}
}

func (r *ReviewsRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.books[review.BookID]; !ok {
		return nil, common.ErrorNotFound
	}
	if _, ok := r.db.users[review.ReviewerID]; !ok {
		return nil, common.ErrorNotFound
	}

	var seq int64
	review.ID, seq = r.db.next()
	review.CreatedAt = r.db.now()
	review.UpdatedAt = review.CreatedAt
	row := &reviewRow{Review: *review, seq: seq}
	row.ReviewerUserName = ""
	r.db.reviews[review.ID] = row

	out := r.db.withUserName(row)
	return &out, nil
}

func (r *ReviewsRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rv, ok := r.db.reviews[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := r.db.withUserName(rv)
	return &out, nil
}

func (r *ReviewsRepository) ListByBook(ctx context.Context, bookID string) ([]models.Review, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows := []*reviewRow{}
	for _, rv := range r.db.reviews {
		if rv.BookID == bookID {
			rows = append(rows, rv)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	result := make([]models.Review, 0, len(rows))
	for _, rv := range rows {
		result = append(result, r.db.withUserName(rv))
	}
	return result, nil
}

// Update persists ReviewText and Rating; ownership and book are left as stored.
func (r *ReviewsRepository) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	rv, ok := r.db.reviews[review.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	rv.ReviewText = review.ReviewText
	rv.Rating = review.Rating
	rv.UpdatedAt = r.db.now()

	out := r.db.withUserName(rv)
	return &out, nil
}

func (r *ReviewsRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.reviews[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.db.reviews, id)
	return nil
}
