package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookreviews/internal/common"
	"github.com/dmitrijs2005/bookreviews/internal/logging"
	"github.com/dmitrijs2005/bookreviews/internal/server/models"
)

// Stage is a step of a gated call. Any stage can end in StageResponded.
type Stage int

const (
	StageStart Stage = iota
	StageTokenExtracted
	StageTokenVerified
	StageIdentityResolved
	StageInvoked
	StageResponded
)

func (s Stage) String() string {
	switch s {
	case StageStart:
		return "start"
	case StageTokenExtracted:
		return "token_extracted"
	case StageTokenVerified:
		return "token_verified"
	case StageIdentityResolved:
		return "identity_resolved"
	case StageInvoked:
		return "invoked"
	case StageResponded:
		return "responded"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

type Verifier interface {
	Verify(token string) (*Claims, error)
}

type Resolver interface {
	Resolve(ctx context.Context, claims *Claims) (models.Identity, error)
}

// Gate authenticates calls to protected operations.
type Gate struct {
	verifier Verifier
	resolver Resolver
	log      logging.Logger
}

func NewGate(verifier Verifier, resolver Resolver, log logging.Logger) *Gate {
	return &Gate{verifier: verifier, resolver: resolver, log: log.With("module", "gate")}
}

// ExtractBearer returns the token of an "Authorization: Bearer <token>"
// header value. The scheme is matched exactly.
func ExtractBearer(header string) (string, error) {
	token, ok := strings.CutPrefix(header, common.BearerScheme)
	if !ok || token == "" {
		return "", common.ErrNoToken
	}
	return token, nil
}

// Authenticate runs the gate up to StageIdentityResolved and returns ctx with
// the caller's identity attached.
//
// Rejections wrap one of common.ErrNoToken, common.ErrInvalidToken,
// common.ErrTokenExpired, common.ErrIdentityNotFound or
// common.ErrMissingSecret. Store failures during resolution are returned
// wrapped as they are.
func (g *Gate) Authenticate(ctx context.Context, header string) (context.Context, error) {
	token, err := ExtractBearer(header)
	if err != nil {
		return ctx, g.reject(ctx, StageStart, err)
	}

	claims, err := g.verifier.Verify(token)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrMissingSecret):
			g.log.Error(ctx, "signing secret is not configured", "stage", StageTokenExtracted.String())
			return ctx, err
		case errors.Is(err, common.ErrTokenExpired):
			return ctx, g.reject(ctx, StageTokenExtracted, err)
		default:
			return ctx, g.reject(ctx, StageTokenExtracted, fmt.Errorf("%w: %w", common.ErrInvalidToken, err))
		}
	}

	identity, err := g.resolver.Resolve(ctx, claims)
	if err != nil {
		if errors.Is(err, common.ErrIdentityNotFound) {
			return ctx, g.reject(ctx, StageTokenVerified, err)
		}
		g.log.Error(ctx, "identity resolution failed", "stage", StageTokenVerified.String(), "error", err)
		return ctx, err
	}

	return WithIdentity(ctx, identity), nil
}

// Invoke authenticates the call and, on success, runs op exactly once with
// the identity in its context. op's error is returned unchanged.
func (g *Gate) Invoke(ctx context.Context, header string, op func(ctx context.Context) error) error {
	ctx, err := g.Authenticate(ctx, header)
	if err != nil {
		return err
	}
	g.log.Debug(ctx, "invoking operation", "stage", StageInvoked.String())
	return op(ctx)
}

func (g *Gate) reject(ctx context.Context, at Stage, reason error) error {
	g.log.Info(ctx, "request rejected", "stage", at.String(), "reason", reason.Error())
	return reason
}
