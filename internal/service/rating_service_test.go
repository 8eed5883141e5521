package service

import (
	"context"
	"testing"
	"time"

	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedSwap() *models.Swap {
	return &models.Swap{
		ID:           1,
		RequesterID:  10,
		ProviderID:   20,
		SkillOffered: "Go",
		SkillWanted:  "Piano",
		Status:       models.SwapStatusCompleted,
	}
}

func ratingServiceWith(ratingRepo *ratingRepoStub, swapRepo *swapRepoStub) *RatingService {
	return NewRatingService(ratingRepo, swapRepo, noopNotificationService())
}

func TestRatingServiceRecordRating(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.Swap, error) {
		return completedSwap(), nil
	}
	ratingRepo := noopRatingRepo()
	var created *models.Rating
	ratingRepo.createWithSummaryFn = func(_ context.Context, r *models.Rating) (*models.RatingSummary, error) {
		created = r
		return &models.RatingSummary{Average: 4.0, Count: 1}, nil
	}
	svc := ratingServiceWith(ratingRepo, swapRepo)

	rating, summary, err := svc.RecordRating(context.Background(), 10, RecordRatingInput{
		SwapID: 1, Rating: 4, Comment: "solid",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	// The rated user is derived, never supplied.
	assert.Equal(t, uint(20), rating.RatedID)
	assert.Equal(t, uint(10), rating.RaterID)
	assert.Equal(t, "Go", rating.SkillExchanged)
	assert.Equal(t, 4.0, summary.Average)
	assert.Equal(t, 1, summary.Count)
}

func TestRatingServiceRecordRatingSwapNotCompleted(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.Swap, error) {
		s := completedSwap()
		s.Status = models.SwapStatusPending
		return s, nil
	}
	svc := ratingServiceWith(noopRatingRepo(), swapRepo)

	_, _, err := svc.RecordRating(context.Background(), 10, RecordRatingInput{SwapID: 1, Rating: 3})
	assertCode(t, err, models.CodeInvalidState)
}

func TestRatingServiceRecordRatingNonParticipant(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.Swap, error) {
		return completedSwap(), nil
	}
	svc := ratingServiceWith(noopRatingRepo(), swapRepo)

	_, _, err := svc.RecordRating(context.Background(), 99, RecordRatingInput{SwapID: 1, Rating: 3})
	assertCode(t, err, models.CodeForbidden)
}

func TestRatingServiceRecordRatingDuplicate(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.Swap, error) {
		return completedSwap(), nil
	}
	ratingRepo := noopRatingRepo()
	ratingRepo.getBySwapAndRaterFn = func(context.Context, uint, uint) (*models.Rating, error) {
		return &models.Rating{ID: 7}, nil
	}
	svc := ratingServiceWith(ratingRepo, swapRepo)

	_, _, err := svc.RecordRating(context.Background(), 10, RecordRatingInput{SwapID: 1, Rating: 3})
	assertCode(t, err, models.CodeConflict)
}

func TestRatingServiceRecordRatingValueBounds(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.Swap, error) {
		return completedSwap(), nil
	}
	svc := ratingServiceWith(noopRatingRepo(), swapRepo)

	for _, value := range []int{0, 6, -1} {
		_, _, err := svc.RecordRating(context.Background(), 10, RecordRatingInput{SwapID: 1, Rating: value})
		assertCode(t, err, models.CodeValidation)
	}
}

func TestRatingServiceUpdateRatingWindow(t *testing.T) {
	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	ratingRepo := noopRatingRepo()
	ratingRepo.getByIDFn = func(context.Context, uint) (*models.Rating, error) {
		return &models.Rating{ID: 1, RaterID: 10, RatedID: 20, Rating: 3, CreatedAt: createdAt}, nil
	}
	svc := ratingServiceWith(ratingRepo, noopSwapRepo())

	newValue := 5

	// One second before the window closes the edit goes through.
	svc.now = func() time.Time { return createdAt.Add(models.RatingEditWindow - time.Second) }
	_, _, err := svc.UpdateRating(context.Background(), 10, UpdateRatingInput{RatingID: 1, Rating: &newValue})
	assert.NoError(t, err)

	// One second past the window it is expired.
	svc.now = func() time.Time { return createdAt.Add(models.RatingEditWindow + time.Second) }
	_, _, err = svc.UpdateRating(context.Background(), 10, UpdateRatingInput{RatingID: 1, Rating: &newValue})
	assertCode(t, err, models.CodeExpired)
}

func TestRatingServiceUpdateRatingWrongActor(t *testing.T) {
	ratingRepo := noopRatingRepo()
	ratingRepo.getByIDFn = func(context.Context, uint) (*models.Rating, error) {
		return &models.Rating{ID: 1, RaterID: 10, CreatedAt: time.Now()}, nil
	}
	svc := ratingServiceWith(ratingRepo, noopSwapRepo())

	value := 4
	_, _, err := svc.UpdateRating(context.Background(), 20, UpdateRatingInput{RatingID: 1, Rating: &value})
	assertCode(t, err, models.CodeForbidden)
}

func TestRatingServiceUpdateRatingValueBounds(t *testing.T) {
	ratingRepo := noopRatingRepo()
	ratingRepo.getByIDFn = func(context.Context, uint) (*models.Rating, error) {
		return &models.Rating{ID: 1, RaterID: 10, CreatedAt: time.Now()}, nil
	}
	svc := ratingServiceWith(ratingRepo, noopSwapRepo())

	bad := 6
	_, _, err := svc.UpdateRating(context.Background(), 10, UpdateRatingInput{RatingID: 1, Rating: &bad})
	assertCode(t, err, models.CodeValidation)
}

func TestRatingServiceUpdateRatingRecomputesSummary(t *testing.T) {
	ratingRepo := noopRatingRepo()
	ratingRepo.getByIDFn = func(context.Context, uint) (*models.Rating, error) {
		return &models.Rating{ID: 1, RaterID: 10, RatedID: 20, Rating: 2, CreatedAt: time.Now()}, nil
	}
	var saved *models.Rating
	ratingRepo.updateWithSummaryFn = func(_ context.Context, r *models.Rating) (*models.RatingSummary, error) {
		saved = r
		return &models.RatingSummary{Average: 5.0, Count: 1}, nil
	}
	svc := ratingServiceWith(ratingRepo, noopSwapRepo())

	value := 5
	_, summary, err := svc.UpdateRating(context.Background(), 10, UpdateRatingInput{RatingID: 1, Rating: &value})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, 5, saved.Rating)
	assert.Equal(t, 5.0, summary.Average)
}

func TestRatingServiceListGiven(t *testing.T) {
	ratingRepo := noopRatingRepo()
	ratingRepo.listByRaterFn = func(_ context.Context, raterID uint, limit, offset int) ([]models.Rating, error) {
		assert.Equal(t, uint(10), raterID)
		assert.Equal(t, 20, limit)
		assert.Equal(t, 0, offset)
		return []models.Rating{{ID: 7, RaterID: raterID}}, nil
	}
	svc := ratingServiceWith(ratingRepo, noopSwapRepo())

	ratings, err := svc.ListGiven(context.Background(), 10, 20, 0)
	require.NoError(t, err)
	require.Len(t, ratings, 1)
	assert.Equal(t, uint(7), ratings[0].ID)
}

func TestRatingServiceGetForSwapNotRated(t *testing.T) {
	swapRepo := noopSwapRepo()
	swapRepo.getByIDFn = func(context.Context, uint) (*models.Swap, error) {
		return completedSwap(), nil
	}
	ratingRepo := noopRatingRepo()
	svc := ratingServiceWith(ratingRepo, swapRepo)

	_, err := svc.GetForSwap(context.Background(), 1, 10)
	assertCode(t, err, models.CodeNotFound)
}
