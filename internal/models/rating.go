package models

import (
	"time"
)

// Rating bounds accepted by the platform.
const (
	MinRatingValue = 1
	MaxRatingValue = 5
)

// RatingEditWindow is how long after creation the rater may still edit a
// rating.
const RatingEditWindow = 24 * time.Hour

// Rating is one participant's review of the other after a completed swap.
// The unique index on (swap_id, rater_id) guarantees at most one rating per
// rater per swap even under concurrent inserts.
type Rating struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	SwapID         uint   `gorm:"not null;uniqueIndex:idx_ratings_swap_rater" json:"swap_id"`
	RaterID        uint   `gorm:"not null;uniqueIndex:idx_ratings_swap_rater" json:"rater_id"`
	RatedID        uint   `gorm:"not null;index" json:"rated_id"`
	Rating         int    `gorm:"not null" json:"rating"`
	Comment        string `json:"comment"`
	SkillExchanged string `json:"skill_exchanged"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Swap  Swap `gorm:"foreignKey:SwapID" json:"swap,omitempty"`
	Rater User `gorm:"foreignKey:RaterID" json:"rater,omitempty"`
	Rated User `gorm:"foreignKey:RatedID" json:"rated,omitempty"`
}

// TableName specifies the table name for GORM
func (Rating) TableName() string {
	return "ratings"
}

// Editable reports whether the rating may still be edited at the given time.
func (r *Rating) Editable(now time.Time) bool {
	return !now.After(r.CreatedAt.Add(RatingEditWindow))
}

// RatingSummary is the derived aggregate over all ratings received by one
// user. Average is rounded to one decimal place; both fields are zero when
// the user has no ratings.
type RatingSummary struct {
	Average float64 `json:"average_rating"`
	Count   int     `json:"total_ratings"`
}
