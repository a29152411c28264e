package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Sender    string    `gorm:"type:varchar(32);not null;index"`
	Direction string    `gorm:"type:varchar(16);not null"`
	Body      string    `gorm:"type:text"`
	CarrierId string    `gorm:"type:varchar(128);index"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (Message) TableName() string {
	return "messages"
}
