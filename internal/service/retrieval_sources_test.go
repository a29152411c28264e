package service

import (
	"context"
	"testing"

	"sms-assistant-be/internal/entity"
	"sms-assistant-be/internal/repository/contract"
	"sms-assistant-be/internal/repository/specification"
	"sms-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scopedResourceRepo records the scope each search receives.
type scopedResourceRepo struct {
	fullTextScope string
	titleScope    string
	bodyScope     string
	resources     []*entity.Resource
}

func (r *scopedResourceRepo) Create(ctx context.Context, resource *entity.Resource) error {
	return nil
}
func (r *scopedResourceRepo) Update(ctx context.Context, resource *entity.Resource) error {
	return nil
}
func (r *scopedResourceRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (r *scopedResourceRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Resource, error) {
	return nil, nil
}
func (r *scopedResourceRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Resource, error) {
	return r.resources, nil
}
func (r *scopedResourceRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.resources)), nil
}
func (r *scopedResourceRepo) FullTextSearch(ctx context.Context, query, scope string, limit int) ([]uuid.UUID, error) {
	r.fullTextScope = scope
	ids := make([]uuid.UUID, len(r.resources))
	for i, res := range r.resources {
		ids[i] = res.Id
	}
	return ids, nil
}
func (r *scopedResourceRepo) ScanTitleSubstring(ctx context.Context, term, scope string, limit int) ([]*entity.Resource, error) {
	r.titleScope = scope
	return r.resources, nil
}
func (r *scopedResourceRepo) ScanBodySubstring(ctx context.Context, term, scope string, limit int) ([]*entity.Resource, error) {
	r.bodyScope = scope
	return r.resources, nil
}

type scopedResourceEmbeddingRepo struct {
	scope string
}

func (r *scopedResourceEmbeddingRepo) Upsert(ctx context.Context, embedding *entity.ResourceEmbedding) error {
	return nil
}
func (r *scopedResourceEmbeddingRepo) DeleteByResourceId(ctx context.Context, resourceId uuid.UUID) error {
	return nil
}
func (r *scopedResourceEmbeddingRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, scope string, limit int) ([]*contract.ScoredResourceEmbedding, error) {
	r.scope = scope
	return nil, nil
}

type scopedChunkEmbeddingRepo struct {
	scope string
}

func (r *scopedChunkEmbeddingRepo) CreateBulk(ctx context.Context, embeddings []*entity.ChunkEmbedding) error {
	return nil
}
func (r *scopedChunkEmbeddingRepo) DeleteByResourceId(ctx context.Context, resourceId uuid.UUID) error {
	return nil
}
func (r *scopedChunkEmbeddingRepo) CountByResourceId(ctx context.Context, resourceId uuid.UUID) (int64, error) {
	return 0, nil
}
func (r *scopedChunkEmbeddingRepo) SearchSimilarWithScore(ctx context.Context, embedding []float32, scope string, limit int) ([]*contract.ScoredChunkEmbedding, error) {
	r.scope = scope
	return nil, nil
}

type scopedUow struct {
	resources  *scopedResourceRepo
	embeddings *scopedResourceEmbeddingRepo
	chunks     *scopedChunkEmbeddingRepo
}

func (u *scopedUow) Begin(ctx context.Context) error { return nil }
func (u *scopedUow) Commit() error                   { return nil }
func (u *scopedUow) Rollback() error                 { return nil }

func (u *scopedUow) ResourceRepository() contract.ResourceRepository { return u.resources }
func (u *scopedUow) ResourceEmbeddingRepository() contract.ResourceEmbeddingRepository {
	return u.embeddings
}
func (u *scopedUow) ChunkEmbeddingRepository() contract.ChunkEmbeddingRepository { return u.chunks }
func (u *scopedUow) MessageRepository() contract.MessageRepository               { return nil }
func (u *scopedUow) PollRepository() contract.PollRepository                     { return nil }
func (u *scopedUow) EventRepository() contract.EventRepository                   { return nil }

type scopedFactory struct {
	uow *scopedUow
}

func (f *scopedFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

func newScopedSources() (*storageSources, *scopedUow) {
	uow := &scopedUow{
		resources: &scopedResourceRepo{
			resources: []*entity.Resource{
				{Id: uuid.New(), Title: "Parking", Body: "Lot is permit-only.", Tag: "logistics"},
			},
		},
		embeddings: &scopedResourceEmbeddingRepo{},
		chunks:     &scopedChunkEmbeddingRepo{},
	}
	return NewStorageSources(&scopedFactory{uow: uow}), uow
}

func TestStorageSourcesForwardScope(t *testing.T) {
	ctx := context.Background()
	sources, uow := newScopedSources()

	_, err := sources.FullTextSearch(ctx, "parking", "logistics", 5)
	require.NoError(t, err)
	assert.Equal(t, "logistics", uow.resources.fullTextScope)

	_, err = sources.VectorSearch(ctx, []float32{0.1}, "logistics", 5)
	require.NoError(t, err)
	assert.Equal(t, "logistics", uow.embeddings.scope)

	_, err = sources.ChunkVectorSearch(ctx, []float32{0.1}, "logistics", 5)
	require.NoError(t, err)
	assert.Equal(t, "logistics", uow.chunks.scope)

	_, err = sources.ScanSubstring(ctx, "parking", "logistics", 5)
	require.NoError(t, err)
	assert.Equal(t, "logistics", uow.resources.titleScope)
	assert.Equal(t, "logistics", uow.resources.bodyScope)
}

func TestScanSubstringDedupesAndLimits(t *testing.T) {
	ctx := context.Background()
	sources, uow := newScopedSources()

	// title and body scans return the same single resource
	records, err := sources.ScanSubstring(ctx, "parking", "", 5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, uow.resources.resources[0].Id.String(), records[0].ID)
}
