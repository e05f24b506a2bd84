package services

import (
	"testing"
	"time"

	"github.com/daytracker/daytracker-api/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database with the same GORM
// settings the server uses.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A pooled second connection would see its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Chart{},
		&models.Entry{},
	))

	return db
}

func ymd(d time.Time) (int, int, int) {
	return d.Year(), int(d.Month()), d.Day()
}

// createEntryOn spreads a time.Time into the year/month/day triple the
// service takes.
func createEntryOn(entries *EntryService, chartID, userID uuid.UUID, date time.Time, value float64, notes string) (*models.Entry, error) {
	y, m, d := ymd(date)
	return entries.Create(chartID, userID, y, m, d, value, notes)
}

func signUpTestUser(t *testing.T, users *UserService, name string) *models.User {
	t.Helper()
	user, err := users.SignUp(name, "ValidPass123")
	require.NoError(t, err)
	return user
}
