package repository

import (
	"context"
	"errors"
	"math"
	"time"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// RatingRepository defines persistence operations for ratings and the
// derived per-user rating summary.
type RatingRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Rating, error)
	GetBySwapAndRater(ctx context.Context, swapID, raterID uint) (*models.Rating, error)
	ListByRated(ctx context.Context, ratedID uint, limit, offset int) ([]models.Rating, error)
	ListByRater(ctx context.Context, raterID uint, limit, offset int) ([]models.Rating, error)
	CreateWithSummary(ctx context.Context, rating *models.Rating) (*models.RatingSummary, error)
	UpdateWithSummary(ctx context.Context, rating *models.Rating) (*models.RatingSummary, error)
	Stats(ctx context.Context, from, to time.Time) (*models.RatingSummary, error)
}

type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository returns a new RatingRepository implementation.
func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) GetByID(ctx context.Context, id uint) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).First(&rating, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Rating", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}

func (r *ratingRepository) GetBySwapAndRater(ctx context.Context, swapID, raterID uint) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.WithContext(ctx).
		Where("swap_id = ? AND rater_id = ?", swapID, raterID).
		First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &rating, nil
}

func (r *ratingRepository) ListByRated(ctx context.Context, ratedID uint, limit, offset int) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Where("rated_id = ?", ratedID).
		Preload("Rater").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ratings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ratings, nil
}

func (r *ratingRepository) ListByRater(ctx context.Context, raterID uint, limit, offset int) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.WithContext(ctx).
		Where("rater_id = ?", raterID).
		Preload("Rated").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ratings).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ratings, nil
}

// CreateWithSummary inserts the rating and recomputes the rated user's
// aggregate inside one transaction. A duplicate (swap, rater) pair trips
// the unique index and maps to Conflict, which is how concurrent double
// submissions are resolved.
func (r *ratingRepository) CreateWithSummary(ctx context.Context, rating *models.Rating) (*models.RatingSummary, error) {
	var summary models.RatingSummary

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rating).Error; err != nil {
			return err
		}
		return recomputeSummary(tx, rating.RatedID, &summary)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewConflictError("Rating already submitted for this swap")
		}
		return nil, models.NewInternalError(err)
	}
	return &summary, nil
}

// UpdateWithSummary saves an edited rating and recomputes the rated user's
// aggregate inside one transaction.
func (r *ratingRepository) UpdateWithSummary(ctx context.Context, rating *models.Rating) (*models.RatingSummary, error) {
	var summary models.RatingSummary

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(rating).Error; err != nil {
			return err
		}
		return recomputeSummary(tx, rating.RatedID, &summary)
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &summary, nil
}

// recomputeSummary derives the user's average and count from all stored
// ratings and writes them back to the user row. Recomputing from scratch
// rather than adjusting incrementally keeps the projection correct no
// matter how the rating set changed.
func recomputeSummary(tx *gorm.DB, ratedID uint, out *models.RatingSummary) error {
	type agg struct {
		Count int64
		Avg   float64
	}
	var a agg
	if err := tx.Model(&models.Rating{}).
		Select("count(*) as count, coalesce(avg(rating), 0) as avg").
		Where("rated_id = ?", ratedID).
		Scan(&a).Error; err != nil {
		return err
	}

	out.Count = int(a.Count)
	out.Average = math.Round(a.Avg*10) / 10

	return tx.Model(&models.User{}).
		Where("id = ?", ratedID).
		Updates(map[string]interface{}{
			"average_rating": out.Average,
			"total_ratings":  out.Count,
		}).Error
}

func (r *ratingRepository) Stats(ctx context.Context, from, to time.Time) (*models.RatingSummary, error) {
	type agg struct {
		Count int64
		Avg   float64
	}
	var a agg
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("count(*) as count, coalesce(avg(rating), 0) as avg").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&a).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.RatingSummary{
		Count:   int(a.Count),
		Average: math.Round(a.Avg*10) / 10,
	}, nil
}
