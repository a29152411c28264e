package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Poll struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Question  string         `gorm:"type:text;not null"`
	Options   datatypes.JSON `gorm:"type:jsonb"` // []string
	Status    string         `gorm:"type:varchar(16);not null;index"`
	ClosesAt  *time.Time
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Poll) TableName() string {
	return "polls"
}

type PollVote struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PollId    uuid.UUID `gorm:"type:uuid;not null;index:idx_poll_votes_poll_sender,unique"`
	Sender    string    `gorm:"type:varchar(32);not null;index:idx_poll_votes_poll_sender,unique"`
	Option    string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (PollVote) TableName() string {
	return "poll_votes"
}
