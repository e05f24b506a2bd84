package dto

import (
	"time"

	"github.com/daytracker/daytracker-api/internal/models"
	"github.com/google/uuid"
)

type CreateChartRequest struct {
	Name string           `json:"name"`
	Type models.ChartType `json:"type"`
}

type UpdateChartRequest struct {
	Name string `json:"name"`
}

type ChartResponse struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Type      models.ChartType `json:"type"`
	CreatedAt time.Time        `json:"createdAt"`
}

type CreateChartResponse struct {
	ID uuid.UUID `json:"id"`
}

func NewChartResponse(c *models.Chart) ChartResponse {
	return ChartResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		CreatedAt: c.CreatedAt,
	}
}
