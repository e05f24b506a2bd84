package handlers

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/daytracker/daytracker-api/internal/dto"
	"github.com/daytracker/daytracker-api/internal/services"
	"github.com/daytracker/daytracker-api/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type EntryHandler struct {
	entries *services.EntryService
}

func NewEntryHandler(entries *services.EntryService) *EntryHandler {
	return &EntryHandler{entries: entries}
}

func (h *EntryHandler) Create(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c, "missing or expired session")
	}

	chartID, err := uuid.Parse(c.Params("chartId"))
	if err != nil {
		return badRequest(c, "invalid chart ID")
	}

	var req dto.CreateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return validationError(c, "date must be formatted as "+dateLayout)
	}

	entry, err := h.entries.Create(chartID, userID, date.Year(), int(date.Month()), date.Day(), req.Value, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChartNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrDuplicateDay),
			errors.Is(err, services.ErrEntryPredatesChart):
			return badRequest(c, err.Error())
		case isValidationErr(err):
			return validationError(c, err.Error())
		}
		slog.Error("entry create failed", "error", err, "user_id", userID.String())
		return internalError(c)
	}

	return c.JSON(dto.CreateEntryResponse{ID: entry.ID})
}

func (h *EntryHandler) ListByYear(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c, "missing or expired session")
	}

	chartID, err := uuid.Parse(c.Params("chartId"))
	if err != nil {
		return badRequest(c, "invalid chart ID")
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 1 {
		return validationError(c, "year query parameter is required")
	}

	entries, err := h.entries.ListByYear(chartID, userID, year)
	if err != nil {
		if errors.Is(err, services.ErrChartNotFound) {
			return notFound(c, err.Error())
		}
		slog.Error("entry list failed", "error", err, "user_id", userID.String())
		return internalError(c)
	}

	resp := make([]dto.EntryResponse, 0, len(entries))
	for i := range entries {
		resp = append(resp, dto.NewEntryResponse(&entries[i]))
	}
	return c.JSON(resp)
}

func (h *EntryHandler) Update(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c, "missing or expired session")
	}

	chartID, err := uuid.Parse(c.Params("chartId"))
	if err != nil {
		return badRequest(c, "invalid chart ID")
	}

	entryID, err := uuid.Parse(c.Params("entryId"))
	if err != nil {
		return badRequest(c, "invalid entry ID")
	}

	var req dto.UpdateEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	entry, err := h.entries.Update(chartID, entryID, userID, req.Value, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChartNotFound),
			errors.Is(err, services.ErrEntryNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrNoChanges):
			return badRequest(c, err.Error())
		case isValidationErr(err):
			return validationError(c, err.Error())
		}
		slog.Error("entry update failed", "error", err, "user_id", userID.String())
		return internalError(c)
	}

	return c.JSON(dto.NewEntryResponse(entry))
}

func (h *EntryHandler) Delete(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c, "missing or expired session")
	}

	chartID, err := uuid.Parse(c.Params("chartId"))
	if err != nil {
		return badRequest(c, "invalid chart ID")
	}

	entryID, err := uuid.Parse(c.Params("entryId"))
	if err != nil {
		return badRequest(c, "invalid entry ID")
	}

	if err := h.entries.Delete(chartID, entryID, userID); err != nil {
		if errors.Is(err, services.ErrChartNotFound) || errors.Is(err, services.ErrEntryNotFound) {
			return notFound(c, err.Error())
		}
		slog.Error("entry delete failed", "error", err, "user_id", userID.String())
		return internalError(c)
	}

	return c.JSON(dto.MessageResponse{Message: "entry deleted"})
}
