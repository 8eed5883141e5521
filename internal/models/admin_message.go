package models

import (
	"time"
)

// AdminMessageType classifies platform-wide announcements.
type AdminMessageType string

const (
	AdminMessageAnnouncement  AdminMessageType = "announcement"
	AdminMessageMaintenance   AdminMessageType = "maintenance"
	AdminMessagePolicyUpdate  AdminMessageType = "policy_update"
	AdminMessageFeatureUpdate AdminMessageType = "feature_update"
)

// ValidAdminMessageType reports whether t is a known announcement type.
func ValidAdminMessageType(t AdminMessageType) bool {
	switch t {
	case AdminMessageAnnouncement, AdminMessageMaintenance, AdminMessagePolicyUpdate, AdminMessageFeatureUpdate:
		return true
	}
	return false
}

// AdminMessage is an announcement authored by an administrator. An empty
// TargetUserIDs list addresses every active (non-banned) user.
type AdminMessage struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	AdminID       uint             `gorm:"not null" json:"admin_id"`
	Title         string           `gorm:"not null" json:"title"`
	Message       string           `gorm:"not null" json:"message"`
	Type          AdminMessageType `gorm:"type:varchar(20);default:'announcement'" json:"type"`
	IsActive      bool             `gorm:"default:true" json:"is_active"`
	TargetUserIDs []uint           `gorm:"serializer:json" json:"target_user_ids"`
	ExpiresAt     *time.Time       `json:"expires_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Admin User `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
}

// TableName specifies the table name for GORM
func (AdminMessage) TableName() string {
	return "admin_messages"
}

// ActiveAt reports whether the announcement should still be shown at the
// given time.
func (m *AdminMessage) ActiveAt(now time.Time) bool {
	if !m.IsActive {
		return false
	}
	return m.ExpiresAt == nil || m.ExpiresAt.After(now)
}
