package contract

import (
	"context"

	"sms-assistant-be/internal/entity"
	"sms-assistant-be/internal/repository/specification"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	// RecentBySender returns the sender's latest messages, newest first.
	RecentBySender(ctx context.Context, sender string, limit int) ([]*entity.Message, error)
}
