package handlers

import (
	"errors"
	"log/slog"

	"github.com/daytracker/daytracker-api/internal/dto"
	"github.com/daytracker/daytracker-api/internal/services"
	"github.com/daytracker/daytracker-api/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ChartHandler struct {
	charts *services.ChartService
}

func NewChartHandler(charts *services.ChartService) *ChartHandler {
	return &ChartHandler{charts: charts}
}

func (h *ChartHandler) Create(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c, "missing or expired session")
	}

	var req dto.CreateChartRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	chart, err := h.charts.Create(userID, req.Name, req.Type)
	if err != nil {
		if errors.Is(err, services.ErrInvalidChartType) || isValidationErr(err) {
			return validationError(c, err.Error())
		}
		slog.Error("chart create failed", "error", err, "user_id", userID.String())
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateChartResponse{ID: chart.ID})
}

func (h *ChartHandler) List(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c, "missing or expired session")
	}

	charts, err := h.charts.List(userID)
	if err != nil {
		slog.Error("chart list failed", "error", err, "user_id", userID.String())
		return internalError(c)
	}

	resp := make([]dto.ChartResponse, 0, len(charts))
	for i := range charts {
		resp = append(resp, dto.NewChartResponse(&charts[i]))
	}
	return c.JSON(resp)
}

func (h *ChartHandler) Get(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c, "missing or expired session")
	}

	chartID, err := uuid.Parse(c.Params("chartId"))
	if err != nil {
		return badRequest(c, "invalid chart ID")
	}

	chart, err := h.charts.Get(chartID, userID)
	if err != nil {
		if errors.Is(err, services.ErrChartNotFound) {
			return notFound(c, err.Error())
		}
		slog.Error("chart get failed", "error", err, "user_id", userID.String())
		return internalError(c)
	}

	return c.JSON(dto.NewChartResponse(chart))
}

func (h *ChartHandler) Update(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c, "missing or expired session")
	}

	chartID, err := uuid.Parse(c.Params("chartId"))
	if err != nil {
		return badRequest(c, "invalid chart ID")
	}

	var req dto.UpdateChartRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	chart, err := h.charts.Update(chartID, userID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrChartNotFound):
			return notFound(c, err.Error())
		case isValidationErr(err):
			return validationError(c, err.Error())
		}
		slog.Error("chart update failed", "error", err, "user_id", userID.String())
		return internalError(c)
	}

	return c.JSON(dto.NewChartResponse(chart))
}

func (h *ChartHandler) Delete(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c, "missing or expired session")
	}

	chartID, err := uuid.Parse(c.Params("chartId"))
	if err != nil {
		return badRequest(c, "invalid chart ID")
	}

	if err := h.charts.Delete(chartID, userID); err != nil {
		if errors.Is(err, services.ErrChartNotFound) {
			return notFound(c, err.Error())
		}
		slog.Error("chart delete failed", "error", err, "user_id", userID.String())
		return internalError(c)
	}

	return c.JSON(dto.MessageResponse{Message: "chart deleted"})
}
