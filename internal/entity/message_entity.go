package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is one SMS exchange with a sender, either direction.
type Message struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Sender    string    // E.164 phone number
	Direction string    // store.DirectionInbound | store.DirectionOutbound
	Body      string
	CarrierId string // carrier-assigned message id, used for dedup
	CreatedAt time.Time
}
