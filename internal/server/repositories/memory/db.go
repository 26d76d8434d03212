// Package memory is an in-process store used when no database DSN is
// configured and by the service and HTTP tests. It mirrors the constraints of
// the Postgres schema: unique usernames and emails, unique title+author,
// cascading review deletes and SET NULL on a book's creator.
package memory

import (
	"sync"
	"time"

	"github.com/dmitrijs2005/bookreviews/internal/server/models"
	"github.com/google/uuid"
)

type bookRow struct {
	models.Book
	seq int64
}

type reviewRow struct {
	models.Review
	seq int64
}

// DB holds every table behind one mutex.
type DB struct {
	mu      sync.RWMutex
	seq     int64
	users   map[string]models.User
	books   map[string]*bookRow
	reviews map[string]*reviewRow

	now func() time.Time
}

func NewDB() *DB {
	return &DB{
		users:   map[string]models.User{},
		books:   map[string]*bookRow{},
		reviews: map[string]*reviewRow{},
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// next must be called with mu held for writing.
func (db *DB) next() (string, int64) {
	db.seq++
	return uuid.NewString(), db.seq
}

// averageRating must be called with mu held.
func (db *DB) averageRating(bookID string) float64 {
	sum, n := 0, 0
	for _, r := range db.reviews {
		if r.BookID == bookID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// withUserName must be called with mu held.
func (db *DB) withUserName(r *reviewRow) models.Review {
	out := r.Review
	if u, ok := db.users[r.ReviewerID]; ok {
		out.ReviewerUserName = u.UserName
	}
	return out
}
