// Package service contains the business logic layer.
package service

import (
	"context"
	"encoding/json"

	"skillswap/internal/middleware"
	"skillswap/internal/models"
	"skillswap/internal/notifications"
	"skillswap/internal/observability"
	"skillswap/internal/repository"
)

// NotificationService persists notifications and pushes them to connected
// clients over Redis pub/sub.
type NotificationService struct {
	notifRepo repository.NotificationRepository
	notifier  *notifications.Notifier
}

// NewNotificationService returns a new NotificationService. The notifier may
// be nil, in which case notifications are persisted but not pushed.
func NewNotificationService(notifRepo repository.NotificationRepository, notifier *notifications.Notifier) *NotificationService {
	return &NotificationService{notifRepo: notifRepo, notifier: notifier}
}

// Notify stores a notification and publishes it to the recipient's channel.
// Publish failures are logged, not returned: delivery is best effort and the
// stored row is the source of truth.
func (s *NotificationService) Notify(ctx context.Context, notification *models.Notification) error {
	if err := s.notifRepo.Create(ctx, notification); err != nil {
		return err
	}

	observability.NotificationsPublishedTotal.WithLabelValues(string(notification.Type)).Inc()

	if s.notifier != nil {
		payload, err := json.Marshal(notification)
		if err == nil {
			if err := s.notifier.PublishUser(ctx, notification.RecipientID, string(payload)); err != nil {
				middleware.Logger.Warn("Failed to publish notification",
					"recipient_id", notification.RecipientID,
					"type", string(notification.Type),
					"error", err.Error(),
				)
			}
		}
	}
	return nil
}

// Broadcast publishes a payload to every connected client without persisting
// per-user rows. Used for platform announcements.
func (s *NotificationService) Broadcast(ctx context.Context, payload interface{}) {
	if s.notifier == nil {
		return
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := s.notifier.PublishBroadcast(ctx, string(data)); err != nil {
		middleware.Logger.Warn("Failed to publish broadcast", "error", err.Error())
	}
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint, unreadOnly bool, limit, offset int) ([]models.Notification, error) {
	return s.notifRepo.ListByRecipient(ctx, userID, unreadOnly, limit, offset)
}

// CountUnread returns how many unread notifications the user has.
func (s *NotificationService) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.notifRepo.CountUnread(ctx, userID)
}

// Stats returns total, unread and per-type counts for the user's inbox.
func (s *NotificationService) Stats(ctx context.Context, userID uint) (*models.NotificationStats, error) {
	return s.notifRepo.Stats(ctx, userID)
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	return s.notifRepo.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead marks all of the user's notifications as read and returns how
// many were affected.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

// Delete removes one of the user's notifications.
func (s *NotificationService) Delete(ctx context.Context, userID, notificationID uint) error {
	return s.notifRepo.Delete(ctx, notificationID, userID)
}
