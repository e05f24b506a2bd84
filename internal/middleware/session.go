package middleware

import (
	"github.com/daytracker/daytracker-api/internal/config"
	"github.com/daytracker/daytracker-api/internal/dto"
	"github.com/daytracker/daytracker-api/internal/session"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// SessionProtected validates the session cookie. The token is read from
// the cookie only; Authorization headers are ignored so no token is ever
// exposed to scripts.
func SessionProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.SessionSecret)},
		TokenLookup: "cookie:" + cfg.CookieName,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			traceID, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Problem{
				Title:   "Unauthorized",
				Status:  fiber.StatusUnauthorized,
				Detail:  "missing or expired session",
				TraceID: traceID,
			})
		},
	})
}

// SlideSession re-issues the session cookie after successful validation,
// extending the expiry window on every authenticated request.
func SlideSession(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID, err := session.GetUserID(c); err == nil {
			if err := session.SetCookie(c, cfg, userID); err != nil {
				return err
			}
		}
		return c.Next()
	}
}
