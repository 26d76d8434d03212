package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookreviews/internal/common"
	"github.com/dmitrijs2005/bookreviews/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = models.Identity{ID: "u-1", UserName: "alice", Email: "alice@example.com"}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newCodec(clock *fakeClock, opts ...CodecOption) *TokenCodec {
	return NewTokenCodec("super-secret", time.Hour, append([]CodecOption{WithClock(clock.Now)}, opts...)...)
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := newCodec(clock)

	tok, err := c.Issue(alice)
	require.NoError(t, err)

	claims, err := c.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, clock.t.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())
	assert.Equal(t, clock.t.Unix(), claims.IssuedAt.Unix())
}

func TestTokenCodec_Expiry(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := newCodec(clock)
	tok, err := c.Issue(alice)
	require.NoError(t, err)

	clock.t = clock.t.Add(time.Hour - time.Second)
	_, err = c.Verify(tok)
	require.NoError(t, err)

	clock.t = clock.t.Add(time.Second)
	_, err = c.Verify(tok)
	require.NoError(t, err, "token is still valid at its expiry instant")

	clock.t = clock.t.Add(time.Nanosecond)
	_, err = c.Verify(tok)
	assert.ErrorIs(t, err, common.ErrTokenExpired)

	clock.t = clock.t.Add(time.Second)
	_, err = c.Verify(tok)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestTokenCodec_Leeway(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := newCodec(clock, WithLeeway(30*time.Second))
	tok, err := c.Issue(alice)
	require.NoError(t, err)

	clock.t = clock.t.Add(time.Hour + 10*time.Second)
	_, err = c.Verify(tok)
	assert.NoError(t, err)
}

func TestTokenCodec_SignatureCheckedBeforeExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	other := NewTokenCodec("other-secret", time.Hour, WithClock(clock.Now))
	tok, err := other.Issue(alice)
	require.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Hour)
	_, err = newCodec(clock).Verify(tok)
	assert.ErrorIs(t, err, common.ErrSignatureInvalid)
	assert.False(t, errors.Is(err, common.ErrTokenExpired))
}

func TestTokenCodec_Tampered(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := newCodec(clock)
	tok, err := c.Issue(alice)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	forged, err := NewTokenCodec("x", time.Hour, WithClock(clock.Now)).Issue(models.Identity{ID: "u-2"})
	require.NoError(t, err)
	parts[1] = strings.Split(forged, ".")[1]

	_, err = c.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, common.ErrSignatureInvalid)
}

func TestTokenCodec_RejectsOtherAlgorithms(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "u-1",
		ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
	}}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("super-secret"))
	require.NoError(t, err)
	_, err = newCodec(clock).Verify(hs512)
	assert.ErrorIs(t, err, common.ErrSignatureInvalid)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = newCodec(clock).Verify(none)
	require.Error(t, err)
}

func TestTokenCodec_Malformed(t *testing.T) {
	c := newCodec(&fakeClock{t: time.Now()})
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := c.Verify(tok)
		assert.ErrorIs(t, err, common.ErrTokenMalformed, tok)
	}
}

func TestTokenCodec_RequiresExpiryAndSubject(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := newCodec(clock)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1"},
	}).SignedString([]byte("super-secret"))
	require.NoError(t, err)
	_, err = c.Verify(noExp)
	assert.Error(t, err)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour))},
	}).SignedString([]byte("super-secret"))
	require.NoError(t, err)
	_, err = c.Verify(noSub)
	assert.ErrorIs(t, err, common.ErrTokenMalformed)
}

func TestTokenCodec_MissingSecretFailsClosed(t *testing.T) {
	c := NewTokenCodec("", time.Hour)

	_, err := c.Issue(alice)
	assert.ErrorIs(t, err, common.ErrMissingSecret)

	tok, err := NewTokenCodec("k", time.Hour).Issue(alice)
	require.NoError(t, err)
	_, err = c.Verify(tok)
	assert.ErrorIs(t, err, common.ErrMissingSecret)
}
