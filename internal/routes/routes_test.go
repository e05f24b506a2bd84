package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/daytracker/daytracker-api/internal/config"
	"github.com/daytracker/daytracker-api/internal/handlers"
	"github.com/daytracker/daytracker-api/internal/models"
	"github.com/daytracker/daytracker-api/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Chart{}, &models.Entry{}))

	cfg := &config.Config{
		SessionSecret: "test-secret",
		SessionExpiry: 30 * 24 * time.Hour,
		CookieName:    "daytracker_session",
		CookieSecure:  false,
	}

	userService := services.NewUserService(db)
	chartService := services.NewChartService(db)
	entryService := services.NewEntryService(db, chartService)

	app := fiber.New()
	app.Use(requestid.New())
	Setup(app, cfg,
		handlers.NewUserHandler(userService, cfg),
		handlers.NewChartHandler(chartService),
		handlers.NewEntryHandler(entryService),
		handlers.NewHealthHandler(db),
	)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &out), "body: %s", data)
	return out
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == "daytracker_session" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestEndToEnd_AliceTracksSleep(t *testing.T) {
	app := newTestApp(t)

	// Sign up and get a session cookie in the same response.
	resp := doJSON(t, app, http.MethodPost, "/Api/Users/SignUp",
		fiber.Map{"name": "alice", "password": "Abcdef123x"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cookie := sessionCookie(t, resp)
	assert.True(t, cookie.HttpOnly)

	// Create a chart.
	resp = doJSON(t, app, http.MethodPost, "/Api/Charts",
		fiber.Map{"name": "Sleep", "type": "counter"}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	chart := decode[map[string]string](t, resp)
	chartID := chart["id"]
	require.NotEmpty(t, chartID)

	// Track today's sleep.
	today := time.Now().UTC()
	resp = doJSON(t, app, http.MethodPost, "/Api/Charts/"+chartID+"/Entries",
		fiber.Map{"date": today.Format("2006-01-02"), "value": 7}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The heatmap query for this year shows exactly that one point.
	resp = doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/Api/Charts/%s/Entries?year=%d", chartID, today.Year()), nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	entries := decode[[]map[string]any](t, resp)
	require.Len(t, entries, 1)
	assert.Equal(t, 7.0, entries[0]["value"])
	assert.Equal(t, float64(today.Day()), entries[0]["day"])

	// Account view counts the chart.
	resp = doJSON(t, app, http.MethodGet, "/Api/Users/Account", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	account := decode[map[string]any](t, resp)
	assert.Equal(t, "alice", account["name"])
	assert.Equal(t, 1.0, account["chartCount"])
}

func TestRoutes_RequireSession(t *testing.T) {
	app := newTestApp(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/Api/Users/Account"},
		{http.MethodPost, "/Api/Charts"},
		{http.MethodGet, "/Api/Charts"},
		{http.MethodDelete, "/Api/Users/Account"},
	} {
		resp := doJSON(t, app, route.method, route.path, nil, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", route.method, route.path)

		// Uniform problem-details body on every failure.
		problem := decode[map[string]any](t, resp)
		assert.Equal(t, "Unauthorized", problem["title"])
		assert.Equal(t, 401.0, problem["status"])
		assert.Contains(t, problem, "detail")
		assert.Contains(t, problem, "traceId")
	}
}

func TestRoutes_ChartRoundTrip(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/Api/Users/SignUp",
		fiber.Map{"name": "bob", "password": "ValidPass123"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cookie := sessionCookie(t, resp)

	resp = doJSON(t, app, http.MethodPost, "/Api/Charts",
		fiber.Map{"name": "Mood", "type": "scale"}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	chartID := decode[map[string]string](t, resp)["id"]

	resp = doJSON(t, app, http.MethodPatch, "/Api/Charts/"+chartID,
		fiber.Map{"name": "Evening Mood"}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/Api/Charts/"+chartID, nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	chart := decode[map[string]any](t, resp)
	assert.Equal(t, "Evening Mood", chart["name"])
	assert.Equal(t, "scale", chart["type"])
}

func TestRoutes_DuplicateSignUpConflicts(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/Api/Users/SignUp",
		fiber.Map{"name": "carol", "password": "ValidPass123"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/Api/Users/SignUp",
		fiber.Map{"name": "carol", "password": "ValidPass123"}, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	problem := decode[map[string]any](t, resp)
	assert.Equal(t, "Conflict", problem["title"])
}

func TestRoutes_SignInAndOut(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/Api/Users/SignUp",
		fiber.Map{"name": "dora", "password": "ValidPass123"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Bad credentials never leak whether the name exists.
	resp = doJSON(t, app, http.MethodPost, "/Api/Users/Account/SignIn",
		fiber.Map{"name": "dora", "password": "WrongPass123"}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = doJSON(t, app, http.MethodPost, "/Api/Users/Account/SignIn",
		fiber.Map{"name": "nobody", "password": "ValidPass123"}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/Api/Users/Account/SignIn",
		fiber.Map{"name": "dora", "password": "ValidPass123"}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := sessionCookie(t, resp)

	resp = doJSON(t, app, http.MethodPost, "/Api/Users/Account/SignOut", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == "daytracker_session" {
			assert.Empty(t, c.Value, "sign-out must clear the cookie")
		}
	}
}

func TestRoutes_SessionSlidesOnUse(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/Api/Users/SignUp",
		fiber.Map{"name": "erin", "password": "ValidPass123"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cookie := sessionCookie(t, resp)

	// Each authenticated request re-issues the cookie with a new expiry.
	resp = doJSON(t, app, http.MethodGet, "/Api/Charts", nil, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	renewed := sessionCookie(t, resp)
	assert.False(t, renewed.Expires.Before(cookie.Expires))
}

func TestRoutes_ForeignChartIsNotFound(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/Api/Users/SignUp",
		fiber.Map{"name": "owner", "password": "ValidPass123"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ownerCookie := sessionCookie(t, resp)

	resp = doJSON(t, app, http.MethodPost, "/Api/Charts",
		fiber.Map{"name": "Secret", "type": "checkmark"}, ownerCookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	chartID := decode[map[string]string](t, resp)["id"]

	resp = doJSON(t, app, http.MethodPost, "/Api/Users/SignUp",
		fiber.Map{"name": "snoop", "password": "ValidPass123"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	snoopCookie := sessionCookie(t, resp)

	// 404, not 403: existence is not revealed.
	resp = doJSON(t, app, http.MethodGet, "/Api/Charts/"+chartID, nil, snoopCookie)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = doJSON(t, app, http.MethodDelete, "/Api/Charts/"+chartID, nil, snoopCookie)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRoutes_DuplicateEntryDayRejected(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/Api/Users/SignUp",
		fiber.Map{"name": "frank", "password": "ValidPass123"}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	cookie := sessionCookie(t, resp)

	resp = doJSON(t, app, http.MethodPost, "/Api/Charts",
		fiber.Map{"name": "Coffee", "type": "counter"}, cookie)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	chartID := decode[map[string]string](t, resp)["id"]

	date := time.Now().UTC().Format("2006-01-02")
	resp = doJSON(t, app, http.MethodPost, "/Api/Charts/"+chartID+"/Entries",
		fiber.Map{"date": date, "value": 2}, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/Api/Charts/"+chartID+"/Entries",
		fiber.Map{"date": date, "value": 3}, cookie)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
