package entity

import (
	"time"

	"github.com/google/uuid"
)

// Poll is a question awaiting votes from a set of recipients. An open poll a
// sender has not voted on yet is surfaced by the action retrieval layer.
type Poll struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Question  string
	Options   []string
	Status    string // constant.PollStatus*
	ClosesAt  *time.Time
	CreatedAt time.Time
}

// PollVote records one sender's answer to a poll.
type PollVote struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PollId    uuid.UUID `gorm:"type:uuid;index"`
	Sender    string
	Option    string
	CreatedAt time.Time
}
