package services

import (
	"errors"
	"fmt"

	"github.com/daytracker/daytracker-api/internal/models"
	"github.com/daytracker/daytracker-api/internal/validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrChartNotFound is returned both when the chart is absent and when
	// it belongs to another user, so a requester cannot probe for charts
	// they do not own.
	ErrChartNotFound    = errors.New("chart not found")
	ErrInvalidChartType = errors.New("chart type must be counter, checkmark or scale")
)

type ChartService struct {
	db *gorm.DB
}

func NewChartService(db *gorm.DB) *ChartService {
	return &ChartService{db: db}
}

func (s *ChartService) Create(ownerID uuid.UUID, name string, chartType models.ChartType) (*models.Chart, error) {
	if err := validation.Name(name); err != nil {
		return nil, err
	}
	if !chartType.Valid() {
		return nil, ErrInvalidChartType
	}

	chart := models.Chart{
		ID:     uuid.New(),
		UserID: ownerID,
		Name:   name,
		Type:   chartType,
	}

	if err := s.db.Create(&chart).Error; err != nil {
		return nil, fmt.Errorf("failed to create chart: %w", err)
	}

	return &chart, nil
}

// Get loads a chart the requester owns. Ownership is part of the query, so
// foreign charts and missing charts are indistinguishable to the caller.
func (s *ChartService) Get(chartID, requesterID uuid.UUID) (*models.Chart, error) {
	var chart models.Chart
	err := s.db.Where("id = ? AND user_id = ?", chartID, requesterID).First(&chart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChartNotFound
		}
		return nil, err
	}
	return &chart, nil
}

func (s *ChartService) List(ownerID uuid.UUID) ([]models.Chart, error) {
	charts := []models.Chart{}
	err := s.db.Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&charts).Error
	return charts, err
}

// Update renames a chart. Type and creation time are immutable.
func (s *ChartService) Update(chartID, requesterID uuid.UUID, newName string) (*models.Chart, error) {
	if err := validation.Name(newName); err != nil {
		return nil, err
	}

	chart, err := s.Get(chartID, requesterID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(chart).Update("name", newName).Error; err != nil {
		return nil, err
	}
	return chart, nil
}

// Delete removes the chart and all of its entries in one transaction.
func (s *ChartService) Delete(chartID, requesterID uuid.UUID) error {
	chart, err := s.Get(chartID, requesterID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chart_id = ?", chart.ID).Delete(&models.Entry{}).Error; err != nil {
			return err
		}
		return tx.Delete(chart).Error
	})
}
