package implementation

import (
	"context"
	"errors"

	"sms-assistant-be/internal/constant"
	"sms-assistant-be/internal/entity"
	"sms-assistant-be/internal/mapper"
	"sms-assistant-be/internal/model"
	"sms-assistant-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PollRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PollMapper
}

func NewPollRepository(db *gorm.DB) contract.PollRepository {
	return &PollRepositoryImpl{
		db:     db,
		mapper: mapper.NewPollMapper(),
	}
}

func (r *PollRepositoryImpl) Create(ctx context.Context, poll *entity.Poll) error {
	m := r.mapper.ToModel(poll)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*poll = *r.mapper.ToEntity(m)
	return nil
}

func (r *PollRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Poll, error) {
	var m model.Poll
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PollRepositoryImpl) OpenWithoutVote(ctx context.Context, sender string) (*entity.Poll, error) {
	var m model.Poll
	subQuery := r.db.Table("poll_votes").Select("poll_id").Where("sender = ?", sender)
	err := r.db.WithContext(ctx).
		Where("status = ?", constant.PollStatusOpen).
		Where("closes_at IS NULL OR closes_at > NOW()").
		Where("id NOT IN (?)", subQuery).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PollRepositoryImpl) RecordVote(ctx context.Context, vote *entity.PollVote) error {
	m := r.mapper.VoteToModel(vote)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*vote = *r.mapper.VoteToEntity(m)
	return nil
}

func (r *PollRepositoryImpl) HasVoted(ctx context.Context, pollId uuid.UUID, sender string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.PollVote{}).
		Where("poll_id = ? AND sender = ?", pollId, sender).
		Count(&count).Error
	return count > 0, err
}
