package entity

import (
	"time"

	"github.com/google/uuid"
)

type Resource struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string
	Kind      string // constant.ResourceKind*
	Body      string
	URL       string
	Tag       string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
