package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookreviews/internal/common"
	"github.com/dmitrijs2005/bookreviews/internal/logging"
	"github.com/dmitrijs2005/bookreviews/internal/server/models"
	"github.com/dmitrijs2005/bookreviews/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}

type TokenIssuer interface {
	Issue(identity models.Identity) (string, error)
}

type RegisterInput struct {
	UserName string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

func (in RegisterInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.UserName, validation.Required),
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required, validation.By(passwordFits)),
	)
}

func passwordFits(value interface{}) error {
	pw, _ := value.(string)
	if len(pw) > MaxPasswordBytes {
		return fmt.Errorf("must be at most %d bytes long", MaxPasswordBytes)
	}
	return nil
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in LoginInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
}

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	User  models.Identity
	Token string
}

type AccountService struct {
	repos  repomanager.RepositoryManager
	hasher PasswordHasher
	tokens TokenIssuer
	log    logging.Logger

	// dummyDigest is compared against when the login email is unknown so
	// both failure paths cost one hash verification.
	dummyDigest string
}

func NewAccountService(repos repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer, log logging.Logger) (*AccountService, error) {
	filler, err := common.MakeRandHexString(16)
	if err != nil {
		return nil, err
	}
	dummy, err := hasher.Hash(filler)
	if err != nil {
		return nil, err
	}
	return &AccountService{
		repos:       repos,
		hasher:      hasher,
		tokens:      tokens,
		log:         log.With("module", "accounts"),
		dummyDigest: dummy,
	}, nil
}

// Register creates an account and issues its first token. A username or
// email already in use yields common.ErrAlreadyExists.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	var user *models.User
	err = s.repos.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		exists, err := repos.Users().ExistsByUserNameOrEmail(ctx, in.UserName, in.Email)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrAlreadyExists
		}
		user, err = repos.Users().Create(ctx, &models.User{
			UserName:     in.UserName,
			Email:        in.Email,
			PasswordHash: digest,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	identity := user.Identity()
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "account registered", "user_id", identity.ID)
	return &AuthResult{User: identity, Token: token}, nil
}

// Login checks the password for the account with the given email. An
// unknown email and a wrong password both yield common.ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}

	user, err := s.repos.Users().GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(in.Password, s.dummyDigest)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	identity := user.Identity()
	token, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: identity, Token: token}, nil
}

// Me returns the caller's identity.
func (s *AccountService) Me(ctx context.Context) (models.Identity, error) {
	return callerFrom(ctx)
}

// Delete removes the caller's account. Its reviews go with it.
func (s *AccountService) Delete(ctx context.Context) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}
	if err := s.repos.Users().Delete(ctx, caller.ID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrIdentityNotFound
		}
		return fmt.Errorf("error deleting user: %w", err)
	}
	s.log.Info(ctx, "account deleted", "user_id", caller.ID)
	return nil
}
