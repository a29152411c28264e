package implementation

import (
	"context"
	"errors"

	"sms-assistant-be/internal/entity"
	"sms-assistant-be/internal/mapper"
	"sms-assistant-be/internal/model"
	"sms-assistant-be/internal/repository/contract"
	"sms-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ResourceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ResourceMapper
}

func NewResourceRepository(db *gorm.DB) contract.ResourceRepository {
	return &ResourceRepositoryImpl{
		db:     db,
		mapper: mapper.NewResourceMapper(),
	}
}

func (r *ResourceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ResourceRepositoryImpl) Create(ctx context.Context, resource *entity.Resource) error {
	m := r.mapper.ToModel(resource)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*resource = *r.mapper.ToEntity(m)
	return nil
}

func (r *ResourceRepositoryImpl) Update(ctx context.Context, resource *entity.Resource) error {
	m := r.mapper.ToModel(resource)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*resource = *r.mapper.ToEntity(m)
	return nil
}

func (r *ResourceRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Resource{}, id).Error
}

func (r *ResourceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Resource, error) {
	var m model.Resource
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ResourceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Resource, error) {
	var models []*model.Resource
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ResourceRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Resource{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ResourceRepositoryImpl) FullTextSearch(ctx context.Context, query, scope string, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 10
	}

	var ids []uuid.UUID
	// plainto_tsquery tolerates raw user text; ts_rank orders matches.
	db := r.db.WithContext(ctx).
		Table("resources").
		Select("id").
		Where("deleted_at IS NULL").
		Where("to_tsvector('english', title || ' ' || body) @@ plainto_tsquery('english', ?)", query)
	if scope != "" {
		db = db.Where("tag = ?", scope)
	}
	err := db.
		Order(gorm.Expr("ts_rank(to_tsvector('english', title || ' ' || body), plainto_tsquery('english', ?)) DESC", query)).
		Limit(limit).
		Pluck("id", &ids).Error

	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *ResourceRepositoryImpl) ScanTitleSubstring(ctx context.Context, term, scope string, limit int) ([]*entity.Resource, error) {
	if limit <= 0 {
		limit = 10
	}
	var models []*model.Resource
	db := r.db.WithContext(ctx).Where("title ILIKE ?", "%"+term+"%")
	if scope != "" {
		db = db.Where("tag = ?", scope)
	}
	err := db.Limit(limit).Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ResourceRepositoryImpl) ScanBodySubstring(ctx context.Context, term, scope string, limit int) ([]*entity.Resource, error) {
	if limit <= 0 {
		limit = 10
	}
	var models []*model.Resource
	db := r.db.WithContext(ctx).Where("body ILIKE ?", "%"+term+"%")
	if scope != "" {
		db = db.Where("tag = ?", scope)
	}
	err := db.Limit(limit).Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
