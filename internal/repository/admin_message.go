package repository

import (
	"context"
	"errors"
	"time"

	"skillswap/internal/models"

	"gorm.io/gorm"
)

// AdminMessageRepository defines persistence operations for platform
// announcements.
type AdminMessageRepository interface {
	Create(ctx context.Context, message *models.AdminMessage) error
	GetByID(ctx context.Context, id uint) (*models.AdminMessage, error)
	List(ctx context.Context, limit, offset int) ([]models.AdminMessage, error)
	ListActive(ctx context.Context, now time.Time) ([]models.AdminMessage, error)
	Deactivate(ctx context.Context, id uint) error
}

type adminMessageRepository struct {
	db *gorm.DB
}

// NewAdminMessageRepository returns a new AdminMessageRepository implementation.
func NewAdminMessageRepository(db *gorm.DB) AdminMessageRepository {
	return &adminMessageRepository{db: db}
}

func (r *adminMessageRepository) Create(ctx context.Context, message *models.AdminMessage) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *adminMessageRepository) GetByID(ctx context.Context, id uint) (*models.AdminMessage, error) {
	var message models.AdminMessage
	if err := r.db.WithContext(ctx).Preload("Admin").First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("AdminMessage", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}

func (r *adminMessageRepository) List(ctx context.Context, limit, offset int) ([]models.AdminMessage, error) {
	var messages []models.AdminMessage
	if err := r.db.WithContext(ctx).
		Preload("Admin").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *adminMessageRepository) ListActive(ctx context.Context, now time.Time) ([]models.AdminMessage, error) {
	var messages []models.AdminMessage
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Order("created_at DESC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *adminMessageRepository) Deactivate(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.AdminMessage{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("AdminMessage", id)
	}
	return nil
}
