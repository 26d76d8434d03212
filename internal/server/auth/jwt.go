package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bookreviews/internal/common"
	"github.com/dmitrijs2005/bookreviews/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload: the account id as subject plus the username
// and email at issue time.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenCodec issues and verifies HS256 signed access tokens.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
	now    func() time.Time
}

type CodecOption func(*TokenCodec)

// WithClock replaces time.Now as the codec's time source.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) { c.now = now }
}

// WithLeeway tolerates clock skew when checking expiry.
func WithLeeway(d time.Duration) CodecOption {
	return func(c *TokenCodec) { c.leeway = d }
}

// NewTokenCodec creates a codec. An empty secret is accepted here but makes
// every Issue and Verify fail with common.ErrMissingSecret.
func NewTokenCodec(secret string, ttl time.Duration, opts ...CodecOption) *TokenCodec {
	c := &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *TokenCodec) Issue(identity models.Identity) (string, error) {
	if len(c.secret) == 0 {
		return "", common.ErrMissingSecret
	}

	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Username: identity.UserName,
		Email:    identity.Email,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, then the expiry, and returns the claims. A
// token is valid while now <= exp.
// Errors wrap common.ErrTokenMalformed, common.ErrSignatureInvalid or
// common.ErrTokenExpired.
func (c *TokenCodec) Verify(token string) (*Claims, error) {
	if len(c.secret) == 0 {
		return nil, common.ErrMissingSecret
	}

	// jwt expires a token when now == exp; the token stays valid through
	// its expiry instant.
	now := func() time.Time { return c.now().Add(-time.Nanosecond) }

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(now),
		jwt.WithLeeway(c.leeway),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, fmt.Errorf("%w: %w", common.ErrSignatureInvalid, err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: %w", common.ErrTokenExpired, err)
		default:
			return nil, fmt.Errorf("%w: %w", common.ErrTokenMalformed, err)
		}
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", common.ErrTokenMalformed)
	}
	return claims, nil
}
