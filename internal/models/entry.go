package models

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one dated data point under a chart. The composite unique index
// guarantees at most one entry per chart per calendar day, so concurrent
// creates for the same day cannot both land.
type Entry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChartID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_entries_chart_date" json:"chart_id"`
	Year      int       `gorm:"not null;uniqueIndex:idx_entries_chart_date" json:"year"`
	Month     int       `gorm:"not null;uniqueIndex:idx_entries_chart_date" json:"month"`
	Day       int       `gorm:"not null;uniqueIndex:idx_entries_chart_date" json:"day"`
	Value     float64   `gorm:"not null" json:"value"`
	Notes     string    `gorm:"size:500" json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
