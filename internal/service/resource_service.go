package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"sms-assistant-be/internal/dto"
	"sms-assistant-be/internal/entity"
	"sms-assistant-be/internal/repository/specification"
	"sms-assistant-be/internal/repository/unitofwork"
	"sms-assistant-be/pkg/events"
	pktNats "sms-assistant-be/pkg/nats"

	"github.com/google/uuid"
)

type IResourceService interface {
	Create(ctx context.Context, req *dto.CreateResourceRequest) (*dto.CreateResourceResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowResourceResponse, error)
	Update(ctx context.Context, req *dto.UpdateResourceRequest) (*dto.UpdateResourceResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, kind string, limit, offset int) (*dto.ListResourcesResponse, error)
}

type resourceService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewResourceService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IResourceService {
	return &resourceService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (s *resourceService) Create(ctx context.Context, req *dto.CreateResourceRequest) (*dto.CreateResourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	resource := entity.Resource{
		Id:        uuid.New(),
		Title:     req.Title,
		Kind:      req.Kind,
		Body:      req.Body,
		URL:       req.URL,
		Tag:       req.Tag,
		CreatedAt: time.Now(),
	}

	err := uow.ResourceRepository().Create(ctx, &resource)
	if err != nil {
		return nil, err
	}

	if err := s.queueEmbedJob(ctx, resource.Id); err != nil {
		return nil, err
	}

	// Domain event for downstream consumers; failure here never fails the
	// request
	if s.eventPublisher != nil {
		evt := events.ResourceCreated{
			ResourceID: resource.Id.String(),
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish resource.created event: %v\n", err)
		}
	}

	return &dto.CreateResourceResponse{
		Id: resource.Id,
	}, nil
}

func (s *resourceService) queueEmbedJob(ctx context.Context, resourceId uuid.UUID) error {
	payload := dto.PublishEmbedResourceMessage{
		ResourceId: resourceId,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.publisherService.Publish(ctx, payloadJson)
}

func (s *resourceService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowResourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	resource, err := uow.ResourceRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, nil // Not found
	}

	res := toShowResourceResponse(resource)
	return &res, nil
}

func (s *resourceService) Update(ctx context.Context, req *dto.UpdateResourceRequest) (*dto.UpdateResourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resource, err := uow.ResourceRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, nil
	}

	now := time.Now()
	resource.Title = req.Title
	resource.Kind = req.Kind
	resource.Body = req.Body
	resource.URL = req.URL
	resource.Tag = req.Tag
	resource.UpdatedAt = &now

	err = uow.ResourceRepository().Update(ctx, resource)
	if err != nil {
		return nil, err
	}

	if err := s.queueEmbedJob(ctx, resource.Id); err != nil {
		return nil, err
	}

	return &dto.UpdateResourceResponse{
		Id: resource.Id,
	}, nil
}

func (s *resourceService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ResourceRepository().Delete(ctx, id); err != nil {
		return err
	}
	if err := uow.ChunkEmbeddingRepository().DeleteByResourceId(ctx, id); err != nil {
		return err
	}
	if err := uow.ResourceEmbeddingRepository().DeleteByResourceId(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *resourceService) List(ctx context.Context, kind string, limit, offset int) (*dto.ListResourcesResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	if kind != "" {
		specs = append(specs, specification.ByKind{Kind: kind})
	}

	total, err := uow.ResourceRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)

	resources, err := uow.ResourceRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := dto.ListResourcesResponse{
		Resources: make([]dto.ShowResourceResponse, len(resources)),
		Total:     total,
	}
	for i, r := range resources {
		res.Resources[i] = toShowResourceResponse(r)
	}
	return &res, nil
}

func toShowResourceResponse(r *entity.Resource) dto.ShowResourceResponse {
	return dto.ShowResourceResponse{
		Id:        r.Id,
		Title:     r.Title,
		Kind:      r.Kind,
		Body:      r.Body,
		URL:       r.URL,
		Tag:       r.Tag,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
