package repository

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// SwapRepository defines persistence operations for swaps.
type SwapRepository interface {
	Create(ctx context.Context, swap *models.Swap) error
	GetByID(ctx context.Context, id uint) (*models.Swap, error)
	ListByUser(ctx context.Context, userID uint, status models.SwapStatus, limit, offset int) ([]models.Swap, error)
	ListAll(ctx context.Context, status models.SwapStatus, limit, offset int) ([]models.Swap, error)
	TransitionStatus(ctx context.Context, id uint, from, to models.SwapStatus, responseDate *time.Time) (bool, error)
	Complete(ctx context.Context, swap *models.Swap, completedAt time.Time) (bool, error)
	CountByStatus(ctx context.Context, from, to time.Time) (map[models.SwapStatus]int64, error)
}

type swapRepository struct {
	db *gorm.DB
}

// NewSwapRepository returns a new SwapRepository implementation.
func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db}
}

func (r *swapRepository) Create(ctx context.Context, swap *models.Swap) error {
	if err := r.db.WithContext(ctx).Create(swap).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *swapRepository) GetByID(ctx context.Context, id uint) (*models.Swap, error) {
	var swap models.Swap
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Provider").
		First(&swap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Swap", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &swap, nil
}

func (r *swapRepository) ListByUser(ctx context.Context, userID uint, status models.SwapStatus, limit, offset int) ([]models.Swap, error) {
	var swaps []models.Swap

	query := r.db.WithContext(ctx).
		Where("requester_id = ? OR provider_id = ?", userID, userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.
		Preload("Requester").
		Preload("Provider").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

func (r *swapRepository) ListAll(ctx context.Context, status models.SwapStatus, limit, offset int) ([]models.Swap, error) {
	var swaps []models.Swap

	query := r.db.WithContext(ctx).Model(&models.Swap{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.
		Preload("Requester").
		Preload("Provider").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&swaps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return swaps, nil
}

// TransitionStatus moves a swap from one status to another with a single
// conditional UPDATE. It returns false when the swap is no longer in the
// expected status, which is how a lost race surfaces to the caller.
func (r *swapRepository) TransitionStatus(ctx context.Context, id uint, from, to models.SwapStatus, responseDate *time.Time) (bool, error) {
	updates := map[string]interface{}{"status": to}
	if responseDate != nil {
		updates["response_date"] = responseDate
	}

	result := r.db.WithContext(ctx).
		Model(&models.Swap{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Complete transitions an accepted swap to completed and credits both
// participants' completed swap counters, all inside one transaction. The
// conditional UPDATE guards against a concurrent completion; when it matches
// no row the transaction rolls back and Complete returns false.
func (r *swapRepository) Complete(ctx context.Context, swap *models.Swap, completedAt time.Time) (bool, error) {
	transitioned := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Swap{}).
			Where("id = ? AND status = ?", swap.ID, models.SwapStatusAccepted).
			Updates(map[string]interface{}{
				"status":          models.SwapStatusCompleted,
				"completion_date": completedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		transitioned = true

		if err := tx.Model(&models.User{}).
			Where("id IN ?", []uint{swap.RequesterID, swap.ProviderID}).
			UpdateColumn("completed_swaps", gorm.Expr("completed_swaps + 1")).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return transitioned, nil
}

func (r *swapRepository) CountByStatus(ctx context.Context, from, to time.Time) (map[models.SwapStatus]int64, error) {
	type row struct {
		Status models.SwapStatus
		Count  int64
	}
	var rows []row
	if err := r.db.WithContext(ctx).
		Model(&models.Swap{}).
		Select("status, count(*) as count").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	counts := make(map[models.SwapStatus]int64, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
