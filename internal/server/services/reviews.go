package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bookreviews/internal/common"
	"github.com/dmitrijs2005/bookreviews/internal/logging"
	"github.com/dmitrijs2005/bookreviews/internal/server/auth"
	"github.com/dmitrijs2005/bookreviews/internal/server/models"
	"github.com/dmitrijs2005/bookreviews/internal/server/repositories/repomanager"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	MinRating = 1
	MaxRating = 5
)

type ReviewInput struct {
	ReviewText string `json:"review_text"`
	Rating     int    `json:"rating"`
}

func (in ReviewInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ReviewText, validation.Required),
		validation.Field(&in.Rating, validation.Required, validation.Min(MinRating), validation.Max(MaxRating)),
	)
}

// ReviewUpdate is a partial update; nil fields are left unchanged.
type ReviewUpdate struct {
	ReviewText *string `json:"review_text"`
	Rating     *int    `json:"rating"`
}

var errNothingToUpdate = errors.New("review_text or rating is required")

func (in ReviewUpdate) Validate() error {
	if in.ReviewText == nil && in.Rating == nil {
		return errNothingToUpdate
	}
	return validation.ValidateStruct(&in,
		validation.Field(&in.ReviewText, validation.NilOrNotEmpty),
		validation.Field(&in.Rating, validation.By(ratingInRange)),
	)
}

func ratingInRange(value interface{}) error {
	r, _ := value.(*int)
	if r != nil && (*r < MinRating || *r > MaxRating) {
		return fmt.Errorf("must be between %d and %d", MinRating, MaxRating)
	}
	return nil
}

type ReviewService struct {
	repos repomanager.RepositoryManager
	log   logging.Logger
}

func NewReviewService(repos repomanager.RepositoryManager, log logging.Logger) *ReviewService {
	return &ReviewService{repos: repos, log: log.With("module", "reviews")}
}

// Create posts the caller's review on a book.
func (s *ReviewService) Create(ctx context.Context, bookID string, in ReviewInput) (*models.Review, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}

	review, err := s.repos.Reviews().Create(ctx, &models.Review{
		BookID:     bookID,
		ReviewerID: caller.ID,
		ReviewText: in.ReviewText,
		Rating:     in.Rating,
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error creating review: %w", err)
	}
	review.ReviewerUserName = caller.UserName

	s.log.Info(ctx, "review created", "review_id", review.ID, "book_id", bookID, "user_id", caller.ID)
	return review, nil
}

func (s *ReviewService) Get(ctx context.Context, id string) (*models.Review, error) {
	if _, err := callerFrom(ctx); err != nil {
		return nil, err
	}
	return s.repos.Reviews().GetByID(ctx, id)
}

// ListByBook returns a book's reviews, newest first.
func (s *ReviewService) ListByBook(ctx context.Context, bookID string) ([]models.Review, error) {
	if _, err := callerFrom(ctx); err != nil {
		return nil, err
	}
	if _, err := s.repos.Books().GetByID(ctx, bookID); err != nil {
		return nil, err
	}
	return s.repos.Reviews().ListByBook(ctx, bookID)
}

// Update changes the text or rating of one of the caller's reviews. The
// input is validated first, then existence (common.ErrorNotFound), then
// ownership (common.ErrForbidden).
func (s *ReviewService) Update(ctx context.Context, id string, in ReviewUpdate) (*models.Review, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, invalid(err)
	}

	var updated *models.Review
	err = s.repos.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		review, err := repos.Reviews().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !auth.CanMutate(caller, review.ReviewerID) {
			return common.ErrForbidden
		}
		if in.ReviewText != nil {
			review.ReviewText = *in.ReviewText
		}
		if in.Rating != nil {
			review.Rating = *in.Rating
		}
		updated, err = repos.Reviews().Update(ctx, review)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes one of the caller's reviews: not found before forbidden.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	caller, err := callerFrom(ctx)
	if err != nil {
		return err
	}

	return s.repos.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		review, err := repos.Reviews().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !auth.CanMutate(caller, review.ReviewerID) {
			return common.ErrForbidden
		}
		if err := repos.Reviews().Delete(ctx, id); err != nil {
			return err
		}
		s.log.Info(ctx, "review deleted", "review_id", id, "user_id", caller.ID)
		return nil
	})
}
