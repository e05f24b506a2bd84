package handlers

import (
	"errors"

	"github.com/daytracker/daytracker-api/internal/dto"
	"github.com/daytracker/daytracker-api/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// problem writes the uniform error body. Every failure path in every
// handler funnels through here so clients always see the same shape.
func problem(c *fiber.Ctx, status int, title, detail string) error {
	traceID, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return c.Status(status).JSON(dto.Problem{
		Title:   title,
		Status:  status,
		Detail:  detail,
		TraceID: traceID,
	})
}

func badRequest(c *fiber.Ctx, detail string) error {
	return problem(c, fiber.StatusBadRequest, "Bad Request", detail)
}

func validationError(c *fiber.Ctx, detail string) error {
	return problem(c, fiber.StatusBadRequest, "Validation Error", detail)
}

func unauthorized(c *fiber.Ctx, detail string) error {
	return problem(c, fiber.StatusUnauthorized, "Unauthorized", detail)
}

func notFound(c *fiber.Ctx, detail string) error {
	return problem(c, fiber.StatusNotFound, "Not Found", detail)
}

func conflict(c *fiber.Ctx, detail string) error {
	return problem(c, fiber.StatusConflict, "Conflict", detail)
}

func internalError(c *fiber.Ctx) error {
	return problem(c, fiber.StatusInternalServerError, "Internal Server Error", "something went wrong")
}

// isValidationErr reports whether err is one of the shared input rules.
func isValidationErr(err error) bool {
	return errors.Is(err, validation.ErrNameLength) ||
		errors.Is(err, validation.ErrPasswordLength) ||
		errors.Is(err, validation.ErrPasswordWeak) ||
		errors.Is(err, validation.ErrNotesTooLong) ||
		errors.Is(err, validation.ErrInvalidDate)
}
