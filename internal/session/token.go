// Package session issues and reads the signed session credential. The
// token is an HS256 JWT that travels only in an HTTP-only cookie; scripts
// never see it, and every authenticated request gets a fresh cookie so the
// 30-day expiry slides.
package session

import (
	"time"

	"github.com/daytracker/daytracker-api/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issue signs a session token for the given user.
func Issue(cfg *config.Config, userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(cfg.SessionExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SessionSecret))
}

// SetCookie attaches a session cookie for userID to the response.
func SetCookie(c *fiber.Ctx, cfg *config.Config, userID uuid.UUID) error {
	token, err := Issue(cfg, userID)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Expires:  time.Now().Add(cfg.SessionExpiry),
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
	return nil
}

// ClearCookie expires the session cookie.
func ClearCookie(c *fiber.Ctx, cfg *config.Config) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteStrictMode,
		Path:     "/",
	})
}
