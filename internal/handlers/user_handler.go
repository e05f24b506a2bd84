package handlers

import (
	"errors"
	"log/slog"

	"github.com/daytracker/daytracker-api/internal/config"
	"github.com/daytracker/daytracker-api/internal/dto"
	"github.com/daytracker/daytracker-api/internal/services"
	"github.com/daytracker/daytracker-api/internal/session"
	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	users *services.UserService
	cfg   *config.Config
}

func NewUserHandler(users *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{users: users, cfg: cfg}
}

// SignUp creates the account and signs the new user straight in by setting
// the session cookie on the 201 response.
func (h *UserHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.users.SignUp(req.Name, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrNameTaken) {
			return conflict(c, err.Error())
		}
		if isValidationErr(err) {
			return validationError(c, err.Error())
		}
		slog.Error("sign up failed", "error", err)
		return internalError(c)
	}

	if err := session.SetCookie(c, h.cfg, user.ID); err != nil {
		slog.Error("failed to issue session", "error", err, "user_id", user.ID.String())
		return internalError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SignUpResponse{ID: user.ID})
}

func (h *UserHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.users.SignIn(req.Name, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return unauthorized(c, err.Error())
		}
		slog.Error("sign in failed", "error", err)
		return internalError(c)
	}

	if err := session.SetCookie(c, h.cfg, user.ID); err != nil {
		slog.Error("failed to issue session", "error", err, "user_id", user.ID.String())
		return internalError(c)
	}

	return c.JSON(dto.MessageResponse{Message: "signed in"})
}

func (h *UserHandler) SignOut(c *fiber.Ctx) error {
	session.ClearCookie(c, h.cfg)
	return c.JSON(dto.MessageResponse{Message: "signed out"})
}

func (h *UserHandler) Account(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c, "missing or expired session")
	}

	account, err := h.users.Account(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return notFound(c, err.Error())
		}
		slog.Error("account lookup failed", "error", err, "user_id", userID.String())
		return internalError(c)
	}

	return c.JSON(account)
}

func (h *UserHandler) UpdateAccount(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c, "missing or expired session")
	}

	var req dto.UpdateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	err = h.users.UpdateAccount(userID, req.CurrentPassword, req.NewData.Name, req.NewData.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return unauthorized(c, err.Error())
		case errors.Is(err, services.ErrNameTaken):
			return conflict(c, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, services.ErrNoChanges):
			return badRequest(c, err.Error())
		case isValidationErr(err):
			return validationError(c, err.Error())
		}
		slog.Error("account update failed", "error", err, "user_id", userID.String())
		return internalError(c)
	}

	return c.JSON(dto.MessageResponse{Message: "account updated"})
}

func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return unauthorized(c, "missing or expired session")
	}

	var req dto.DeleteAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.users.DeleteAccount(userID, req.Password); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return unauthorized(c, err.Error())
		case errors.Is(err, services.ErrUserNotFound):
			return notFound(c, err.Error())
		}
		slog.Error("account delete failed", "error", err, "user_id", userID.String())
		return internalError(c)
	}

	session.ClearCookie(c, h.cfg)
	return c.JSON(dto.MessageResponse{Message: "account deleted"})
}
