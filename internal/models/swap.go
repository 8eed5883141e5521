package models

import (
	"time"
)

// SwapStatus represents the lifecycle status of a swap request.
type SwapStatus string

const (
	// SwapStatusPending is the initial status of every swap.
	SwapStatusPending SwapStatus = "pending"
	// SwapStatusAccepted indicates the provider accepted the request.
	SwapStatusAccepted SwapStatus = "accepted"
	// SwapStatusRejected indicates the provider declined the request.
	SwapStatusRejected SwapStatus = "rejected"
	// SwapStatusCompleted indicates both skills were exchanged.
	SwapStatusCompleted SwapStatus = "completed"
	// SwapStatusCancelled indicates the requester withdrew the request.
	SwapStatusCancelled SwapStatus = "cancelled"
)

// IsTerminal reports whether no further transitions may leave this status.
// Every status other than pending and accepted is terminal; accepted only
// permits completion.
func (s SwapStatus) IsTerminal() bool {
	return s != SwapStatusPending && s != SwapStatusAccepted
}

// Swap represents a skill exchange between a requester and a provider.
// Swaps are never deleted; cancellation is a terminal status, not a removal.
type Swap struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RequesterID  uint       `gorm:"not null;index:idx_swaps_requester_status" json:"requester_id"`
	ProviderID   uint       `gorm:"not null;index:idx_swaps_provider_status" json:"provider_id"`
	SkillOffered string     `gorm:"not null" json:"skill_offered"`
	SkillWanted  string     `gorm:"not null" json:"skill_wanted"`
	Description  string     `json:"description"`
	Status       SwapStatus `gorm:"type:varchar(20);default:'pending';index:idx_swaps_requester_status;index:idx_swaps_provider_status" json:"status"`
	ProposedTime string     `json:"proposed_time"`
	Duration     string     `json:"duration"`
	Location     string     `json:"location"`
	Notes        string     `json:"notes"`

	// ResponseDate is set exactly once, when the swap leaves pending via
	// accept or reject. CompletionDate is set exactly once, on entering
	// completed.
	ResponseDate   *time.Time `json:"response_date,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Provider  User `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
}

// TableName specifies the table name for GORM
func (Swap) TableName() string {
	return "swaps"
}

// IsParticipant reports whether userID is the requester or the provider.
func (s *Swap) IsParticipant(userID uint) bool {
	return s.RequesterID == userID || s.ProviderID == userID
}

// OtherParticipant returns the counterpart of userID in this swap. The
// result is derived from the two participant fields and never stored.
func (s *Swap) OtherParticipant(userID uint) uint {
	if s.RequesterID == userID {
		return s.ProviderID
	}
	return s.RequesterID
}
