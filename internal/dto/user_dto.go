package dto

import (
	"time"

	"github.com/google/uuid"
)

type SignUpRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type SignInRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type SignUpResponse struct {
	ID uuid.UUID `json:"id"`
}

type AccountResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	ChartCount int64     `json:"chartCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UpdateAccountRequest changes the name and/or password; the current
// password must always be supplied.
type UpdateAccountRequest struct {
	CurrentPassword string         `json:"currentPassword"`
	NewData         AccountNewData `json:"newData"`
}

type AccountNewData struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

type DeleteAccountRequest struct {
	Password string `json:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
