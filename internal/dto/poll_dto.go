package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePollRequest struct {
	Question string     `json:"question" validate:"required"`
	Options  []string   `json:"options" validate:"required,min=2,dive,required"`
	ClosesAt *time.Time `json:"closes_at"`
}

type CreatePollResponse struct {
	Id uuid.UUID `json:"id"`
}
