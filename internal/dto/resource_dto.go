package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateResourceRequest struct {
	Title string `json:"title" validate:"required"`
	Kind  string `json:"kind" validate:"required,oneof=document event faq"`
	Body  string `json:"body" validate:"required"`
	URL   string `json:"url" validate:"omitempty,url"`
	Tag   string `json:"tag"`
}

type CreateResourceResponse struct {
	Id uuid.UUID `json:"id"`
}

type ShowResourceResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Kind      string     `json:"kind"`
	Body      string     `json:"body"`
	URL       string     `json:"url,omitempty"`
	Tag       string     `json:"tag,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type UpdateResourceRequest struct {
	Id    uuid.UUID
	Title string `json:"title" validate:"required"`
	Kind  string `json:"kind" validate:"required,oneof=document event faq"`
	Body  string `json:"body" validate:"required"`
	URL   string `json:"url" validate:"omitempty,url"`
	Tag   string `json:"tag"`
}

type UpdateResourceResponse struct {
	Id uuid.UUID `json:"id"`
}

type ListResourcesResponse struct {
	Resources []ShowResourceResponse `json:"resources"`
	Total     int64                  `json:"total"`
}

// PublishEmbedResourceMessage rides the in-process embed-job bus
type PublishEmbedResourceMessage struct {
	ResourceId uuid.UUID `json:"resource_id"`
}
