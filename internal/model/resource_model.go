package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Resource struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string         `gorm:"type:varchar(255);not null"`
	Kind      string         `gorm:"type:varchar(32);not null;index"`
	Body      string         `gorm:"type:text"`
	URL       string         `gorm:"type:varchar(512)"`
	Tag       string         `gorm:"type:varchar(64);index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Resource) TableName() string {
	return "resources"
}
