package contract

import (
	"context"

	"sms-assistant-be/internal/entity"

	"github.com/google/uuid"
)

// ScoredResourceEmbedding wraps ResourceEmbedding with its similarity score
type ScoredResourceEmbedding struct {
	Embedding  *entity.ResourceEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type ResourceEmbeddingRepository interface {
	Upsert(ctx context.Context, embedding *entity.ResourceEmbedding) error
	DeleteByResourceId(ctx context.Context, resourceId uuid.UUID) error
	// SearchSimilarWithScore returns resource-level embeddings ordered by
	// cosine similarity, best-first. A non-empty scope restricts matches to
	// resources carrying that tag.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, scope string, limit int) ([]*ScoredResourceEmbedding, error)
}
