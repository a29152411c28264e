package service

import (
	"context"
	"time"

	"sms-assistant-be/internal/constant"
	"sms-assistant-be/internal/dto"
	"sms-assistant-be/internal/entity"
	"sms-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IPollService interface {
	Create(ctx context.Context, req *dto.CreatePollRequest) (*dto.CreatePollResponse, error)
}

type pollService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPollService(uowFactory unitofwork.RepositoryFactory) IPollService {
	return &pollService{uowFactory: uowFactory}
}

func (s *pollService) Create(ctx context.Context, req *dto.CreatePollRequest) (*dto.CreatePollResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	poll := entity.Poll{
		Id:        uuid.New(),
		Question:  req.Question,
		Options:   req.Options,
		Status:    constant.PollStatusOpen,
		ClosesAt:  req.ClosesAt,
		CreatedAt: time.Now(),
	}

	if err := uow.PollRepository().Create(ctx, &poll); err != nil {
		return nil, err
	}

	return &dto.CreatePollResponse{Id: poll.Id}, nil
}
