package models

import (
	"time"
)

// NotificationType identifies what kind of event a notification describes.
type NotificationType string

const (
	// NotificationSwapRequest is sent to a provider when a swap is created.
	NotificationSwapRequest NotificationType = "swap_request"
	// NotificationSwapAccepted is sent to the requester on acceptance.
	NotificationSwapAccepted NotificationType = "swap_accepted"
	// NotificationSwapRejected is sent to the requester on rejection.
	NotificationSwapRejected NotificationType = "swap_rejected"
	// NotificationSwapCompleted is sent to the participant who did not mark
	// the swap completed.
	NotificationSwapCompleted NotificationType = "swap_completed"
	// NotificationRatingReceived is sent to the rated user.
	NotificationRatingReceived NotificationType = "rating_received"
	// NotificationAdminMessage is sent by platform administrators.
	NotificationAdminMessage NotificationType = "admin_message"
)

// Notification is a persisted message for one user. Delivery over the
// real-time channel is best effort; the row is the source of truth.
type Notification struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RecipientID uint             `gorm:"not null;index:idx_notifications_recipient_read" json:"recipient_id"`
	Type        NotificationType `gorm:"type:varchar(32);not null" json:"type"`
	Title       string           `gorm:"not null" json:"title"`
	Message     string           `gorm:"not null" json:"message"`

	RelatedSwapID *uint `json:"related_swap_id,omitempty"`
	RelatedUserID *uint `json:"related_user_id,omitempty"`

	IsRead bool `gorm:"default:false;index:idx_notifications_recipient_read" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	RelatedSwap *Swap `gorm:"foreignKey:RelatedSwapID" json:"related_swap,omitempty"`
	RelatedUser *User `gorm:"foreignKey:RelatedUserID" json:"related_user,omitempty"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NotificationStats summarizes one user's notification inbox.
type NotificationStats struct {
	Total  int64                      `json:"total"`
	Unread int64                      `json:"unread"`
	ByType map[NotificationType]int64 `json:"by_type"`
}
