package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

func (r *PostgresRepository) Create(ctx context.Context, book *models.Book) (*models.Book, error) {
	query :=
		`INSERT INTO books (title, author, genre, created_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		book.Title, book.Author, book.Genre, nullableID(book.CreatedBy)).Scan(&book.ID, &book.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateBook
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	query :=
		`SELECT b.id, b.title, b.author, b.genre, COALESCE(b.created_by::text, ''), b.created_at,
		        COALESCE(AVG(r.rating), 0)::float8
		 FROM books b
		 LEFT JOIN reviews r ON r.book_id = b.id
		 WHERE b.id = $1
		 GROUP BY b.id
		 `

	book := &models.Book{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&book.ID, &book.Title, &book.Author, &book.Genre, &book.CreatedBy, &book.CreatedAt, &book.AverageRating)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

func (r *PostgresRepository) ExistsByTitleAndAuthor(ctx context.Context, title, author string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM books WHERE title = $1 AND author = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, title, author).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter models.BookFilter) (*models.BookPage, error) {
	genre := likePattern(filter.Genre)
	author := likePattern(filter.Author)

	countQuery :=
		`SELECT COUNT(*) FROM books b
		 WHERE ($1 = '' OR b.genre ILIKE $1) AND ($2 = '' OR b.author ILIKE $2)
		 `

	page := &models.BookPage{Books: []models.Book{}}
	if err := r.db.QueryRowContext(ctx, countQuery, genre, author).Scan(&page.Total); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	query :=
		`SELECT b.id, b.title, b.author, b.genre, COALESCE(b.created_by::text, ''), b.created_at,
		        COALESCE(AVG(r.rating), 0)::float8
		 FROM books b
		 LEFT JOIN reviews r ON r.book_id = b.id
		 WHERE ($1 = '' OR b.genre ILIKE $1) AND ($2 = '' OR b.author ILIKE $2)
		 GROUP BY b.id
		 ORDER BY b.created_at DESC, b.id
		 LIMIT $3 OFFSET $4
		 `

	rows, err := r.db.QueryContext(ctx, query, genre, author, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.CreatedBy, &b.CreatedAt, &b.AverageRating); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		page.Books = append(page.Books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return page, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrorNotFound
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
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

// likePattern turns a user supplied fragment into an ILIKE substring pattern
// with LIKE metacharacters escaped. Empty input stays empty (no filter).
func likePattern(s string) string {
	if s == "" {
		return ""
	}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + escaped + "%"
}

func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}
