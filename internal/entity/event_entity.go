package entity

import (
	"time"

	"github.com/google/uuid"
)

// Event is a calendar entry answered by the structured composer path.
type Event struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	StartAt   *time.Time
	Location  string
	Required  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}
