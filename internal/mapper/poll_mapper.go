package mapper

import (
	"encoding/json"

	"sms-assistant-be/internal/entity"
	"sms-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type PollMapper struct{}

func NewPollMapper() *PollMapper {
	return &PollMapper{}
}

func (m *PollMapper) ToEntity(p *model.Poll) *entity.Poll {
	if p == nil {
		return nil
	}

	var options []string
	if len(p.Options) > 0 {
		// Malformed options are treated as an empty set, not an error.
		_ = json.Unmarshal(p.Options, &options)
	}

	return &entity.Poll{
		Id:        p.Id,
		Question:  p.Question,
		Options:   options,
		Status:    p.Status,
		ClosesAt:  p.ClosesAt,
		CreatedAt: p.CreatedAt,
	}
}

func (m *PollMapper) ToModel(p *entity.Poll) *model.Poll {
	if p == nil {
		return nil
	}

	optionsJson, _ := json.Marshal(p.Options)

	return &model.Poll{
		Id:        p.Id,
		Question:  p.Question,
		Options:   datatypes.JSON(optionsJson),
		Status:    p.Status,
		ClosesAt:  p.ClosesAt,
		CreatedAt: p.CreatedAt,
	}
}

func (m *PollMapper) VoteToEntity(v *model.PollVote) *entity.PollVote {
	if v == nil {
		return nil
	}

	return &entity.PollVote{
		Id:        v.Id,
		PollId:    v.PollId,
		Sender:    v.Sender,
		Option:    v.Option,
		CreatedAt: v.CreatedAt,
	}
}

func (m *PollMapper) VoteToModel(v *entity.PollVote) *model.PollVote {
	if v == nil {
		return nil
	}

	return &model.PollVote{
		Id:        v.Id,
		PollId:    v.PollId,
		Sender:    v.Sender,
		Option:    v.Option,
		CreatedAt: v.CreatedAt,
	}
}
