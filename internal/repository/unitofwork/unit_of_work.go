package unitofwork

import (
	"context"

	"sms-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ResourceRepository() contract.ResourceRepository
	ResourceEmbeddingRepository() contract.ResourceEmbeddingRepository
	ChunkEmbeddingRepository() contract.ChunkEmbeddingRepository
	MessageRepository() contract.MessageRepository
	PollRepository() contract.PollRepository
	EventRepository() contract.EventRepository
}
