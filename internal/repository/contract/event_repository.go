package contract

import (
	"context"

	"sms-assistant-be/internal/entity"
	"sms-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Event, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Event, error)
	// Upcoming returns future events ordered by start time, soonest first.
	// Events with no start time sort last.
	Upcoming(ctx context.Context, limit int) ([]*entity.Event, error)
}
