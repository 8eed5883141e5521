package models

import (
	"time"
)

// ReportType selects which slice of platform activity a report covers.
type ReportType string

const (
	ReportTypeActivity ReportType = "activity"
	ReportTypeSwaps    ReportType = "swaps"
	ReportTypeUsers    ReportType = "users"
	ReportTypeRatings  ReportType = "ratings"
)

// ValidReportType reports whether t is a known report type.
func ValidReportType(t ReportType) bool {
	switch t {
	case ReportTypeActivity, ReportTypeSwaps, ReportTypeUsers, ReportTypeRatings:
		return true
	}
	return false
}

// ReportSummary holds the aggregate figures of a generated report. Fields
// irrelevant to the report type stay zero.
type ReportSummary struct {
	TotalUsers     int     `json:"total_users,omitempty"`
	ActiveUsers    int     `json:"active_users,omitempty"`
	TotalSwaps     int     `json:"total_swaps,omitempty"`
	CompletedSwaps int     `json:"completed_swaps,omitempty"`
	TotalRatings   int     `json:"total_ratings,omitempty"`
	AverageRating  float64 `json:"average_rating,omitempty"`
}

// Report is a persisted snapshot of platform statistics over a date range.
type Report struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Type          ReportType    `gorm:"type:varchar(20);not null" json:"type"`
	GeneratedByID uint          `gorm:"not null" json:"generated_by_id"`
	From          time.Time     `json:"from"`
	To            time.Time     `json:"to"`
	Summary       ReportSummary `gorm:"serializer:json" json:"summary"`
	FileName      string        `json:"file_name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	GeneratedBy User `gorm:"foreignKey:GeneratedByID" json:"generated_by,omitempty"`
}

// TableName specifies the table name for GORM
func (Report) TableName() string {
	return "reports"
}
