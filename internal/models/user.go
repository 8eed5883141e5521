// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a member of the skill exchange platform.
//
// AverageRating, TotalRatings and CompletedSwaps are derived projections:
// they are recomputed from Rating and Swap records by the service layer and
// must never be patched incrementally outside of it.
type User struct {
	ID            uint     `gorm:"primaryKey" json:"id"`
	Name          string   `gorm:"not null" json:"name"`
	Email         string   `gorm:"unique;not null" json:"email"`
	Password      string   `gorm:"not null" json:"-"`
	Location      string   `json:"location"`
	ProfilePhoto  string   `json:"profile_photo"`
	SkillsOffered []string `gorm:"serializer:json" json:"skills_offered"`
	SkillsWanted  []string `gorm:"serializer:json" json:"skills_wanted"`
	Availability  string   `json:"availability"`
	IsPublic      bool     `gorm:"default:true" json:"is_public"`
	IsAdmin       bool     `gorm:"default:false" json:"is_admin"`
	IsBanned      bool     `gorm:"default:false" json:"is_banned"`

	AverageRating  float64 `gorm:"default:0" json:"average_rating"`
	TotalRatings   int     `gorm:"default:0" json:"total_ratings"`
	CompletedSwaps int     `gorm:"default:0" json:"completed_swaps"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// OffersSkill reports whether the user currently lists skill among their
// offered skills.
func (u *User) OffersSkill(skill string) bool {
	for _, s := range u.SkillsOffered {
		if s == skill {
			return true
		}
	}
	return false
}

// WantsSkill reports whether the user currently lists skill among their
// wanted skills.
func (u *User) WantsSkill(skill string) bool {
	for _, s := range u.SkillsWanted {
		if s == skill {
			return true
		}
	}
	return false
}
