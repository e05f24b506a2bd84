package models

import (
	"time"

	"github.com/google/uuid"
)

// ChartType decides how the client interprets entry values: a running
// count, a 0/1 checkmark, or a scale rating. Storage treats the value as
// an opaque number either way.
type ChartType string

const (
	ChartTypeCounter   ChartType = "counter"
	ChartTypeCheckmark ChartType = "checkmark"
	ChartTypeScale     ChartType = "scale"
)

// Valid reports whether t is one of the three known chart types.
func (t ChartType) Valid() bool {
	switch t {
	case ChartTypeCounter, ChartTypeCheckmark, ChartTypeScale:
		return true
	}
	return false
}

// Chart is a named tracked metric owned by exactly one user. Type is fixed
// at creation.
type Chart struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	Type      ChartType `gorm:"size:20;not null" json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
