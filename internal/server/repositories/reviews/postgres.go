package reviews

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookreviews/internal/common"
	"github.com/dmitrijs2005/bookreviews/internal/dbx"
	"github.com/dmitrijs2005/bookreviews/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectReview = `SELECT r.id, r.book_id, r.reviewer_id, u.username, r.review_text, r.rating, r.created_at, r.updated_at
		 FROM reviews r
		 JOIN users u ON u.id = r.reviewer_id
		 `

type scanner interface {
	Scan(dest ...any) error
}

func scanReview(s scanner) (*models.Review, error) {
	rv := &models.Review{}
	err := s.Scan(&rv.ID, &rv.BookID, &rv.ReviewerID, &rv.ReviewerUserName,
		&rv.ReviewText, &rv.Rating, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *PostgresRepository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if _, err := uuid.Parse(review.BookID); err != nil {
		return nil, common.ErrorNotFound
	}

	query :=
		`INSERT INTO reviews (book_id, reviewer_id, review_text, rating)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		review.BookID, review.ReviewerID, review.ReviewText, review.Rating).Scan(&review.ID, &review.CreatedAt, &review.UpdatedAt)

	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return review, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	rv, err := scanReview(r.db.QueryRowContext(ctx, selectReview+`WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rv, nil
}

func (r *PostgresRepository) ListByBook(ctx context.Context, bookID string) ([]models.Review, error) {
	if _, err := uuid.Parse(bookID); err != nil {
		return []models.Review{}, nil
	}

	rows, err := r.db.QueryContext(ctx, selectReview+`WHERE r.book_id = $1 ORDER BY r.created_at DESC, r.id`, bookID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Update persists ReviewText and Rating; ownership and book are left as stored.
func (r *PostgresRepository) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	if _, err := uuid.Parse(review.ID); err != nil {
		return nil, common.ErrorNotFound
	}

	query :=
		`UPDATE reviews SET review_text = $2, rating = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, review.ID, review.ReviewText, review.Rating).Scan(&review.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return review, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
