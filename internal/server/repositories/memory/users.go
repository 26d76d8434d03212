package memory

import (
	"context"

	"github.com/dmitrijs2005/bookreviews/internal/common"
	"github.com/dmitrijs2005/bookreviews/internal/server/models"
)

type UsersRepository struct {
	db *DB
}

func NewUsersRepository(db *DB) *UsersRepository {
	return &UsersRepository{db: db}
}

func (r *UsersRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for _, u := range r.db.users {
		if u.UserName == user.UserName || u.Email == user.Email {
			return nil, common.ErrAlreadyExists
		}
	}

	user.ID, _ = r.db.next()
	user.CreatedAt = r.db.now()
	r.db.users[user.ID] = *user

	out := *user
	return &out, nil
}

func (r *UsersRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *UsersRepository) ExistsByUserNameOrEmail(ctx context.Context, userName, email string) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, u := range r.db.users {
		if u.UserName == userName || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// Delete removes the account, its reviews, and clears it as creator of any book.
func (r *UsersRepository) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.db.users, id)

	for rid, rv := range r.db.reviews {
		if rv.ReviewerID == id {
			delete(r.db.reviews, rid)
		}
	}
	for _, b := range r.db.books {
		if b.CreatedBy == id {
			b.CreatedBy = ""
		}
	}
	return nil
}
