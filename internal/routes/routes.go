package routes

import (
	"time"

	"github.com/daytracker/daytracker-api/internal/config"
	"github.com/daytracker/daytracker-api/internal/handlers"
	"github.com/daytracker/daytracker-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	userHandler *handlers.UserHandler,
	chartHandler *handlers.ChartHandler,
	entryHandler *handlers.EntryHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/Api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/Health", healthHandler.Check)

	// Sign-up/sign-in are the only unauthenticated routes. Stricter rate
	// limit: 10 req/min per IP against credential stuffing.
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	api.Post("/Users/SignUp", authLimiter, userHandler.SignUp)
	api.Post("/Users/Account/SignIn", authLimiter, userHandler.SignIn)

	// Everything below requires a valid session cookie; the expiry window
	// slides on each authenticated request.
	protected := api.Group("", middleware.SessionProtected(cfg), middleware.SlideSession(cfg))

	account := protected.Group("/Users/Account")
	account.Post("/SignOut", userHandler.SignOut)
	account.Get("", userHandler.Account)
	account.Patch("", userHandler.UpdateAccount)
	account.Delete("", userHandler.DeleteAccount)

	charts := protected.Group("/Charts")
	charts.Post("", chartHandler.Create)
	charts.Get("", chartHandler.List)
	charts.Get("/:chartId", chartHandler.Get)
	charts.Patch("/:chartId", chartHandler.Update)
	charts.Delete("/:chartId", chartHandler.Delete)

	entries := charts.Group("/:chartId/Entries")
	entries.Post("", entryHandler.Create)
	entries.Get("", entryHandler.ListByYear)
	entries.Patch("/:entryId", entryHandler.Update)
	entries.Delete("/:entryId", entryHandler.Delete)
}
