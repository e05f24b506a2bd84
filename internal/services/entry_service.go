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
	ErrEntryNotFound      = errors.New("entry not found")
	ErrDuplicateDay       = errors.New("an entry already exists for that day")
	ErrEntryPredatesChart = errors.New("entry year is before the chart was created")
)

type EntryService struct {
	db     *gorm.DB
	charts *ChartService
}

func NewEntryService(db *gorm.DB, charts *ChartService) *EntryService {
	return &EntryService{db: db, charts: charts}
}

// Create adds a data point for one calendar day. The per-day uniqueness is
// backed by the composite index on (chart_id, year, month, day); the
// pre-check exists only to give the common case a clean error without a
// failed insert. If two creates race, the losing insert comes back as
// gorm.ErrDuplicatedKey and maps to the same ErrDuplicateDay.
func (s *EntryService) Create(chartID, requesterID uuid.UUID, year, month, day int, value float64, notes string) (*models.Entry, error) {
	chart, err := s.charts.Get(chartID, requesterID)
	if err != nil {
		return nil, err
	}

	if err := validation.Date(year, month, day); err != nil {
		return nil, err
	}
	if year < chart.CreatedAt.Year() {
		return nil, ErrEntryPredatesChart
	}
	if err := validation.Notes(notes); err != nil {
		return nil, err
	}

	var existing models.Entry
	err = s.db.Where("chart_id = ? AND year = ? AND month = ? AND day = ?",
		chart.ID, year, month, day).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateDay
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	entry := models.Entry{
		ID:      uuid.New(),
		ChartID: chart.ID,
		Year:    year,
		Month:   month,
		Day:     day,
		Value:   value,
		Notes:   notes,
	}

	if err := s.db.Create(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateDay
		}
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	return &entry, nil
}

func (s *EntryService) get(chartID, entryID, requesterID uuid.UUID) (*models.Entry, error) {
	if _, err := s.charts.Get(chartID, requesterID); err != nil {
		return nil, err
	}

	var entry models.Entry
	err := s.db.Where("id = ? AND chart_id = ?", entryID, chartID).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Update changes the value and/or notes of an entry; the date is fixed. At
// least one field must be supplied.
func (s *EntryService) Update(chartID, entryID, requesterID uuid.UUID, value *float64, notes *string) (*models.Entry, error) {
	if value == nil && notes == nil {
		return nil, ErrNoChanges
	}

	entry, err := s.get(chartID, entryID, requesterID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if value != nil {
		updates["value"] = *value
	}
	if notes != nil {
		if err := validation.Notes(*notes); err != nil {
			return nil, err
		}
		updates["notes"] = *notes
	}

	if err := s.db.Model(entry).Updates(updates).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *EntryService) Delete(chartID, entryID, requesterID uuid.UUID) error {
	entry, err := s.get(chartID, entryID, requesterID)
	if err != nil {
		return err
	}
	return s.db.Delete(entry).Error
}

// ListByYear returns every entry of an owned chart for the given year,
// calendar order. An empty year is an empty slice, not an error.
func (s *EntryService) ListByYear(chartID, requesterID uuid.UUID, year int) ([]models.Entry, error) {
	if _, err := s.charts.Get(chartID, requesterID); err != nil {
		return nil, err
	}

	entries := []models.Entry{}
	err := s.db.Where("chart_id = ? AND year = ?", chartID, year).
		Order("month ASC, day ASC").
		Find(&entries).Error
	return entries, err
}
