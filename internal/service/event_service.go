package service

import (
	"context"
	"time"

	"sms-assistant-be/internal/dto"
	"sms-assistant-be/internal/entity"
	"sms-assistant-be/internal/repository/unitofwork"
	"sms-assistant-be/pkg/compose"

	"github.com/google/uuid"
)

type IEventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.CreateEventResponse, error)
	Digest(ctx context.Context) (*dto.DigestResponse, error)
}

type eventService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewEventService(uowFactory unitofwork.RepositoryFactory) IEventService {
	return &eventService{uowFactory: uowFactory}
}

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.CreateEventResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	event := entity.Event{
		Id:        uuid.New(),
		Name:      req.Name,
		StartAt:   req.StartAt,
		Location:  req.Location,
		Required:  req.Required,
		CreatedAt: time.Now(),
	}

	if err := uow.EventRepository().Create(ctx, &event); err != nil {
		return nil, err
	}

	return &dto.CreateEventResponse{Id: event.Id}, nil
}

// Digest mirrors the SMS digest answer over HTTP so dashboards can render
// the same view senders get by text.
func (s *eventService) Digest(ctx context.Context) (*dto.DigestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	upcoming, err := uow.EventRepository().Upcoming(ctx, compose.DigestCap)
	if err != nil {
		return nil, err
	}

	composeEvents := make([]compose.Event, len(upcoming))
	shown := make([]dto.ShowEventResponse, len(upcoming))
	for i, e := range upcoming {
		composeEvents[i] = compose.Event{
			Name:     e.Name,
			StartAt:  e.StartAt,
			Location: e.Location,
			Required: e.Required,
		}
		shown[i] = dto.ShowEventResponse{
			Id:       e.Id,
			Name:     e.Name,
			StartAt:  e.StartAt,
			Location: e.Location,
			Required: e.Required,
		}
	}

	answer := compose.ComposeDigest(composeEvents)

	return &dto.DigestResponse{
		Headline: answer.Headline,
		Events:   shown,
	}, nil
}
