package entity

import (
	"time"

	"github.com/google/uuid"
)

// ResourceEmbedding is the single resource-level vector used by the coarse
// semantic signal.
type ResourceEmbedding struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ResourceId     uuid.UUID `gorm:"type:uuid;index"`
	Document       string
	EmbeddingValue []float32
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// ChunkEmbedding is one chunk of a resource body with its vector. Chunk hits
// are reduced to their best-scoring parent resource during retrieval.
type ChunkEmbedding struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ResourceId     uuid.UUID `gorm:"type:uuid;index"`
	Document       string
	EmbeddingValue []float32
	ChunkIndex     int
	CreatedAt      time.Time
}
