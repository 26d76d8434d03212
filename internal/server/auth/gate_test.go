package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookreviews/internal/common"
	"github.com/dmitrijs2005/bookreviews/internal/logging"
	"github.com/dmitrijs2005/bookreviews/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func newGate(t *testing.T, codec *TokenCodec, users *fakeUsers) *Gate {
	t.Helper()
	return NewGate(codec, NewStoreResolver(users), logging.NewDiscard())
}

func liveUsers() *fakeUsers {
	return &fakeUsers{users: map[string]*models.User{
		"u-1": {ID: "u-1", UserName: "alice-renamed", Email: "alice@example.com", PasswordHash: "h"},
	}}
}

func TestExtractBearer(t *testing.T) {
	tok, err := ExtractBearer("Bearer abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	for _, h := range []string{"", "abc", "Bearer ", "bearer abc", "Basic abc", "Bearerabc"} {
		_, err := ExtractBearer(h)
		assert.ErrorIs(t, err, common.ErrNoToken, h)
	}
}

func TestGate_InvokeSuccess(t *testing.T) {
	codec := NewTokenCodec("k", time.Hour)
	tok, err := codec.Issue(alice)
	require.NoError(t, err)

	calls := 0
	opErr := errors.New("op failed")
	err = newGate(t, codec, liveUsers()).Invoke(context.Background(), "Bearer "+tok, func(ctx context.Context) error {
		calls++
		id, ok := IdentityFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, "u-1", id.ID)
		assert.Equal(t, "alice-renamed", id.UserName, "identity must come from the store")
		return opErr
	})

	assert.Same(t, opErr, err)
	assert.Equal(t, 1, calls)
}

func TestGate_Rejections(t *testing.T) {
	codec := NewTokenCodec("k", time.Hour)
	valid, err := codec.Issue(alice)
	require.NoError(t, err)
	ghost, err := codec.Issue(models.Identity{ID: "u-404"})
	require.NoError(t, err)
	foreign, err := NewTokenCodec("other", time.Hour).Issue(alice)
	require.NoError(t, err)
	expired, err := NewTokenCodec("k", time.Hour, WithClock(func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	})).Issue(alice)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   error
	}{
		{"no header", "", common.ErrNoToken},
		{"wrong scheme", "Token " + valid, common.ErrNoToken},
		{"garbage", "Bearer garbage", common.ErrInvalidToken},
		{"foreign signature", "Bearer " + foreign, common.ErrInvalidToken},
		{"expired", "Bearer " + expired, common.ErrTokenExpired},
		{"deleted account", "Bearer " + ghost, common.ErrIdentityNotFound},
	}

	gate := newGate(t, codec, liveUsers())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			err := gate.Invoke(context.Background(), tc.header, func(context.Context) error {
				called = true
				return nil
			})
			assert.ErrorIs(t, err, tc.want)
			assert.False(t, called)
		})
	}
}

func TestGate_MissingSecret(t *testing.T) {
	tok, err := NewTokenCodec("k", time.Hour).Issue(alice)
	require.NoError(t, err)

	_, err = newGate(t, NewTokenCodec("", time.Hour), liveUsers()).Authenticate(context.Background(), "Bearer "+tok)
	assert.ErrorIs(t, err, common.ErrMissingSecret)
}

func TestGate_StoreFailure(t *testing.T) {
	codec := NewTokenCodec("k", time.Hour)
	tok, err := codec.Issue(alice)
	require.NoError(t, err)

	dbErr := errors.New("connection refused")
	ctx, err := newGate(t, codec, &fakeUsers{err: dbErr}).Authenticate(context.Background(), "Bearer "+tok)
	assert.ErrorIs(t, err, dbErr)
	assert.False(t, errors.Is(err, common.ErrIdentityNotFound))
	_, ok := IdentityFromContext(ctx)
	assert.False(t, ok)
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "start", StageStart.String())
	assert.Equal(t, "identity_resolved", StageIdentityResolved.String())
	assert.Equal(t, "responded", StageResponded.String())
	assert.Equal(t, "stage(42)", Stage(42).String())
}
