package contract

import (
	"context"

	"sms-assistant-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredChunkEmbedding wraps ChunkEmbedding with its similarity score.
type ScoredChunkEmbedding struct {
	Embedding  *entity.ChunkEmbedding
	Similarity float64
}

type ChunkEmbeddingRepository interface {
	CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error
	DeleteByResourceId(ctx context.Context, resourceId uuid.UUID) error
	CountByResourceId(ctx context.Context, resourceId uuid.UUID) (int64, error)
	// SearchSimilarWithScore returns chunk embeddings ordered by cosine
	// similarity, best-first. Callers reduce to best chunk per resource.
	// A non-empty scope restricts matches to resources carrying that tag.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, scope string, limit int) ([]*ScoredChunkEmbedding, error)
}
