package dto

import (
	"github.com/daytracker/daytracker-api/internal/models"
	"github.com/google/uuid"
)

// CreateEntryRequest carries the day as a "2006-01-02" date string.
type CreateEntryRequest struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Notes string  `json:"notes"`
}

type UpdateEntryRequest struct {
	Value *float64 `json:"value"`
	Notes *string  `json:"notes"`
}

type CreateEntryResponse struct {
	ID uuid.UUID `json:"id"`
}

// EntryResponse is one heatmap cell; the year is implied by the query.
type EntryResponse struct {
	ID    uuid.UUID `json:"id"`
	Month int       `json:"month"`
	Day   int       `json:"day"`
	Value float64   `json:"value"`
	Notes string    `json:"notes"`
}

func NewEntryResponse(e *models.Entry) EntryResponse {
	return EntryResponse{
		ID:    e.ID,
		Month: e.Month,
		Day:   e.Day,
		Value: e.Value,
		Notes: e.Notes,
	}
}
