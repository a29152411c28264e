package implementation

import (
	"context"

	"sms-assistant-be/internal/entity"
	"sms-assistant-be/internal/mapper"
	"sms-assistant-be/internal/model"
	"sms-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResourceEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EmbeddingMapper
}

func NewResourceEmbeddingRepository(db *gorm.DB) contract.ResourceEmbeddingRepository {
	return &ResourceEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewEmbeddingMapper(),
	}
}

func (r *ResourceEmbeddingRepositoryImpl) Upsert(ctx context.Context, embedding *entity.ResourceEmbedding) error {
	m := r.mapper.ToResourceModel(embedding)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "resource_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"document", "embedding_value", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*embedding = *r.mapper.ToResourceEntity(m)
	return nil
}

func (r *ResourceEmbeddingRepositoryImpl) DeleteByResourceId(ctx context.Context, resourceId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("resource_id = ?", resourceId).Delete(&model.ResourceEmbedding{}).Error
}

// SearchSimilarWithScore returns embeddings with similarity scores.
// Cosine distance in pgvector is 1 - cosine_similarity, so the score is
// computed as 1 - (embedding_value <=> query_vector).
func (r *ResourceEmbeddingRepositoryImpl) SearchSimilarWithScore(ctx context.Context, embedding []float32, scope string, limit int) ([]*contract.ScoredResourceEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.ResourceEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	db := r.db.WithContext(ctx).
		Table("resource_embeddings").
		Select("resource_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Joins("JOIN resources ON resources.id = resource_embeddings.resource_id").
		Where("resource_embeddings.deleted_at IS NULL").
		Where("resources.deleted_at IS NULL")
	if scope != "" {
		db = db.Where("resources.tag = ?", scope)
	}
	err := db.
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredResourceEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredResourceEmbedding{
			Embedding:  r.mapper.ToResourceEntity(&res.ResourceEmbedding),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}
