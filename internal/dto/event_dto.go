package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateEventRequest struct {
	Name     string     `json:"name" validate:"required"`
	StartAt  *time.Time `json:"start_at"`
	Location string     `json:"location"`
	Required bool       `json:"required"`
}

type CreateEventResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowEventResponse struct {
	Id       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	StartAt  *time.Time `json:"start_at"`
	Location string     `json:"location,omitempty"`
	Required bool       `json:"required"`
}

type DigestResponse struct {
	Headline string              `json:"headline"`
	Events   []ShowEventResponse `json:"events"`
}
