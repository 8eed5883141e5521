package service

import (
	"context"
	"fmt"
	"time"

	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/observability"
	"skillswap/internal/repository"
)

// MaxRatingCommentLength caps rating comments.
const MaxRatingCommentLength = 1000

// RatingService records ratings against completed swaps and maintains the
// rated user's aggregate. The clock is injected so the edit window can be
// tested without waiting.
type RatingService struct {
	ratingRepo repository.RatingRepository
	swapRepo   repository.SwapRepository
	notifSvc   *NotificationService

	now func() time.Time
}

// RecordRatingInput carries the fields a rater submits.
type RecordRatingInput struct {
	SwapID  uint
	Rating  int
	Comment string
}

// UpdateRatingInput carries an edit to an existing rating. Nil fields are
// left unchanged.
type UpdateRatingInput struct {
	RatingID uint
	Rating   *int
	Comment  *string
}

// NewRatingService returns a new RatingService.
func NewRatingService(ratingRepo repository.RatingRepository, swapRepo repository.SwapRepository, notifSvc *NotificationService) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		swapRepo:   swapRepo,
		notifSvc:   notifSvc,
		now:        time.Now,
	}
}

// RecordRating validates and stores a new rating, recomputes the rated
// user's aggregate, and notifies them. The rated user is always the swap
// participant who is not the rater.
func (s *RatingService) RecordRating(ctx context.Context, raterID uint, in RecordRatingInput) (*models.Rating, *models.RatingSummary, error) {
	swap, err := s.swapRepo.GetByID(ctx, in.SwapID)
	if err != nil {
		return nil, nil, err
	}
	if swap.Status != models.SwapStatusCompleted {
		return nil, nil, models.NewInvalidStateError("Swap must be completed before rating")
	}
	if !swap.IsParticipant(raterID) {
		return nil, nil, models.NewForbiddenError("Only swap participants can leave a rating")
	}

	ratedID := swap.OtherParticipant(raterID)

	existing, err := s.ratingRepo.GetBySwapAndRater(ctx, in.SwapID, raterID)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, models.NewConflictError("Rating already submitted for this swap")
	}

	if err := validateRatingValue(in.Rating); err != nil {
		return nil, nil, err
	}
	if len(in.Comment) > MaxRatingCommentLength {
		return nil, nil, models.NewValidationError(fmt.Sprintf("Comment too long (max %d characters)", MaxRatingCommentLength))
	}

	rating := &models.Rating{
		SwapID:         in.SwapID,
		RaterID:        raterID,
		RatedID:        ratedID,
		Rating:         in.Rating,
		Comment:        in.Comment,
		SkillExchanged: swap.SkillOffered,
	}

	// The unique index settles a race between two identical submissions
	// that both passed the existence check above.
	summary, err := s.ratingRepo.CreateWithSummary(ctx, rating)
	if err != nil {
		return nil, nil, err
	}
	observability.RatingsRecordedTotal.WithLabelValues("create").Inc()

	s.notifyRated(ctx, rating)

	return rating, summary, nil
}

// UpdateRating edits an existing rating within the 24-hour window and
// recomputes the rated user's aggregate from scratch.
func (s *RatingService) UpdateRating(ctx context.Context, actorID uint, in UpdateRatingInput) (*models.Rating, *models.RatingSummary, error) {
	rating, err := s.ratingRepo.GetByID(ctx, in.RatingID)
	if err != nil {
		return nil, nil, err
	}
	if rating.RaterID != actorID {
		return nil, nil, models.NewForbiddenError("Only the rating's author can edit it")
	}
	if !rating.Editable(s.now()) {
		return nil, nil, models.NewExpiredError("Ratings can only be edited within 24 hours of creation")
	}

	if in.Rating != nil {
		if err := validateRatingValue(*in.Rating); err != nil {
			return nil, nil, err
		}
		rating.Rating = *in.Rating
	}
	if in.Comment != nil {
		if len(*in.Comment) > MaxRatingCommentLength {
			return nil, nil, models.NewValidationError(fmt.Sprintf("Comment too long (max %d characters)", MaxRatingCommentLength))
		}
		rating.Comment = *in.Comment
	}

	summary, err := s.ratingRepo.UpdateWithSummary(ctx, rating)
	if err != nil {
		return nil, nil, err
	}
	observability.RatingsRecordedTotal.WithLabelValues("update").Inc()

	return rating, summary, nil
}

// ListForUser returns ratings received by a user, newest first.
func (s *RatingService) ListForUser(ctx context.Context, ratedID uint, limit, offset int) ([]models.Rating, error) {
	return s.ratingRepo.ListByRated(ctx, ratedID, limit, offset)
}

// ListGiven returns ratings the user has written, newest first.
func (s *RatingService) ListGiven(ctx context.Context, raterID uint, limit, offset int) ([]models.Rating, error) {
	return s.ratingRepo.ListByRater(ctx, raterID, limit, offset)
}

// GetForSwap returns the caller's rating on a swap, or NotFound when the
// caller has not rated it.
func (s *RatingService) GetForSwap(ctx context.Context, swapID, raterID uint) (*models.Rating, error) {
	if _, err := s.swapRepo.GetByID(ctx, swapID); err != nil {
		return nil, err
	}
	rating, err := s.ratingRepo.GetBySwapAndRater(ctx, swapID, raterID)
	if err != nil {
		return nil, err
	}
	if rating == nil {
		return nil, models.NewNotFoundError("Rating", swapID)
	}
	return rating, nil
}

func (s *RatingService) notifyRated(ctx context.Context, rating *models.Rating) {
	if s.notifSvc == nil {
		return
	}
	swapID := rating.SwapID
	raterID := rating.RaterID
	if err := s.notifSvc.Notify(ctx, &models.Notification{
		RecipientID:   rating.RatedID,
		Type:          models.NotificationRatingReceived,
		Title:         "New rating received",
		Message:       fmt.Sprintf("You received a %d-star rating for %s", rating.Rating, rating.SkillExchanged),
		RelatedSwapID: &swapID,
		RelatedUserID: &raterID,
	}); err != nil {
		middleware.Logger.Warn("Failed to store rating notification",
			"rating_id", rating.ID,
			"recipient_id", rating.RatedID,
			"error", err.Error(),
		)
	}
}

func validateRatingValue(v int) error {
	if v < models.MinRatingValue || v > models.MaxRatingValue {
		return models.NewValidationError(fmt.Sprintf("Rating must be between %d and %d", models.MinRatingValue, models.MaxRatingValue))
	}
	return nil
}
