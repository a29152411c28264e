package contract

import (
	"context"

	"sms-assistant-be/internal/entity"
	"sms-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ResourceRepository interface {
	Create(ctx context.Context, resource *entity.Resource) error
	Update(ctx context.Context, resource *entity.Resource) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Resource, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Resource, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// FullTextSearch ranks resources against the query with Postgres tsvector
	// matching. Returns IDs best-first. A non-empty scope restricts matches
	// to resources carrying that tag.
	FullTextSearch(ctx context.Context, query, scope string, limit int) ([]uuid.UUID, error)
	// ScanTitleSubstring and ScanBodySubstring are the unranked lexical
	// fallbacks (ILIKE), returned in storage order.
	ScanTitleSubstring(ctx context.Context, term, scope string, limit int) ([]*entity.Resource, error)
	ScanBodySubstring(ctx context.Context, term, scope string, limit int) ([]*entity.Resource, error)
}
