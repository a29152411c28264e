package model

import (
	"time"

	"github.com/google/uuid"
)

type Event struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string     `gorm:"type:varchar(255);not null"`
	StartAt   *time.Time `gorm:"index"`
	Location  string     `gorm:"type:varchar(255)"`
	Required  bool       `gorm:"default:false"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "events"
}
