package contract

import (
	"context"

	"sms-assistant-be/internal/entity"

	"github.com/google/uuid"
)

type PollRepository interface {
	Create(ctx context.Context, poll *entity.Poll) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Poll, error)
	// OpenWithoutVote returns the newest open poll the sender has not voted
	// on, or nil when none is pending.
	OpenWithoutVote(ctx context.Context, sender string) (*entity.Poll, error)
	RecordVote(ctx context.Context, vote *entity.PollVote) error
	HasVoted(ctx context.Context, pollId uuid.UUID, sender string) (bool, error)
}
