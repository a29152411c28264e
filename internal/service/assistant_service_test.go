package service

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"sms-assistant-be/internal/dto"
	"sms-assistant-be/internal/entity"
	"sms-assistant-be/internal/repository/contract"
	"sms-assistant-be/internal/repository/memory"
	"sms-assistant-be/internal/repository/specification"
	"sms-assistant-be/internal/repository/unitofwork"
	"sms-assistant-be/pkg/rag/retrieval"
	"sms-assistant-be/pkg/rag/window"
	"sms-assistant-be/pkg/store"
	"sms-assistant-be/pkg/tone"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

type fakeMessageRepo struct {
	created []*entity.Message
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *entity.Message) error {
	r.created = append(r.created, message)
	return nil
}

func (r *fakeMessageRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	return r.created, nil
}

func (r *fakeMessageRepo) RecentBySender(ctx context.Context, sender string, limit int) ([]*entity.Message, error) {
	return nil, nil
}

type fakePollRepo struct {
	votes []*entity.PollVote
}

func (r *fakePollRepo) Create(ctx context.Context, poll *entity.Poll) error { return nil }
func (r *fakePollRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.Poll, error) {
	return nil, nil
}
func (r *fakePollRepo) OpenWithoutVote(ctx context.Context, sender string) (*entity.Poll, error) {
	return nil, nil
}
func (r *fakePollRepo) RecordVote(ctx context.Context, vote *entity.PollVote) error {
	r.votes = append(r.votes, vote)
	return nil
}
func (r *fakePollRepo) HasVoted(ctx context.Context, pollId uuid.UUID, sender string) (bool, error) {
	return false, nil
}

type fakeEventRepo struct {
	upcoming []*entity.Event
}

func (r *fakeEventRepo) Create(ctx context.Context, event *entity.Event) error { return nil }
func (r *fakeEventRepo) Update(ctx context.Context, event *entity.Event) error { return nil }
func (r *fakeEventRepo) Delete(ctx context.Context, id uuid.UUID) error        { return nil }
func (r *fakeEventRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Event, error) {
	return nil, nil
}
func (r *fakeEventRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Event, error) {
	return r.upcoming, nil
}
func (r *fakeEventRepo) Upcoming(ctx context.Context, limit int) ([]*entity.Event, error) {
	if limit < len(r.upcoming) {
		return r.upcoming[:limit], nil
	}
	return r.upcoming, nil
}

type fakeUow struct {
	messages *fakeMessageRepo
	polls    *fakePollRepo
	events   *fakeEventRepo
}

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) ResourceRepository() contract.ResourceRepository { return nil }
func (u *fakeUow) ResourceEmbeddingRepository() contract.ResourceEmbeddingRepository {
	return nil
}
func (u *fakeUow) ChunkEmbeddingRepository() contract.ChunkEmbeddingRepository { return nil }
func (u *fakeUow) MessageRepository() contract.MessageRepository               { return u.messages }
func (u *fakeUow) PollRepository() contract.PollRepository                     { return u.polls }
func (u *fakeUow) EventRepository() contract.EventRepository                   { return u.events }

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

type stubLayer struct {
	name  string
	items []store.LayerItem
}

func (l *stubLayer) Name() string { return l.name }
func (l *stubLayer) Retrieve(ctx context.Context, q retrieval.Query) ([]store.LayerItem, error) {
	return l.items, nil
}

type stubActionSource struct {
	proposal *store.ActionProposal
}

func (s *stubActionSource) PendingAction(ctx context.Context, sender string) (*store.ActionProposal, error) {
	return s.proposal, nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// ---- harness ----

type harness struct {
	svc IAssistantService
	uow *fakeUow
}

func newHarness(items []store.LayerItem, proposal *store.ActionProposal, events []*entity.Event) *harness {
	uow := &fakeUow{
		messages: &fakeMessageRepo{},
		polls:    &fakePollRepo{},
		events:   &fakeEventRepo{upcoming: events},
	}

	quiet := log.New(io.Discard, "", 0)
	retriever := retrieval.NewRetriever(
		[]retrieval.Layer{&stubLayer{name: store.LayerContent, items: items}},
		retrieval.DefaultConfig(),
		quiet,
	)

	svc := NewAssistantService(
		&fakeFactory{uow: uow},
		retriever,
		window.NewBuilder(window.DefaultConfig()),
		tone.NewEngine(nil),
		nil, // no LLM, extraction path
		&stubActionSource{proposal: proposal},
		memory.NewInboundDedup(nil, time.Minute),
		memory.NewConversationRepository(),
		nil, // no event publisher
		0,
		nopLogger{},
	)

	return &harness{svc: svc, uow: uow}
}

func inbound(body string) *dto.InboundSmsRequest {
	return &dto.InboundSmsRequest{
		MessageId: uuid.NewString(),
		From:      "+15550001111",
		Body:      body,
	}
}

// ---- tests ----

func TestHandleInboundAnswersFromContent(t *testing.T) {
	h := newHarness([]store.LayerItem{
		{
			Layer:   store.LayerContent,
			ID:      "res-1",
			Title:   "Parking Instructions",
			Snippet: "Street parking is free after 6 PM. The lot behind the building is permit-only.",
			Score:   0.9,
		},
	}, nil, nil)

	res, err := h.svc.HandleInbound(context.Background(), inbound("where do we park"))
	require.NoError(t, err)
	require.NotEmpty(t, res.Segments)
	assert.False(t, res.Duplicate)
	assert.Contains(t, res.Segments[0], "parking")

	// inbound and outbound both stored
	require.Len(t, h.uow.messages.created, 2)
	assert.Equal(t, store.DirectionInbound, h.uow.messages.created[0].Direction)
	assert.Equal(t, store.DirectionOutbound, h.uow.messages.created[1].Direction)
}

func TestHandleInboundNoMatches(t *testing.T) {
	h := newHarness(nil, nil, nil)

	res, err := h.svc.HandleInbound(context.Background(), inbound("what is the meaning of life"))
	require.NoError(t, err)
	require.NotEmpty(t, res.Segments)
	assert.Contains(t, res.Segments[0], "don't have anything about that")
}

func TestHandleInboundDigest(t *testing.T) {
	start := time.Now().Add(48 * time.Hour)
	h := newHarness(nil, nil, []*entity.Event{
		{Id: uuid.New(), Name: "Fall Kickoff", StartAt: &start, Location: "Clubhouse"},
	})

	res, err := h.svc.HandleInbound(context.Background(), inbound("any events this week?"))
	require.NoError(t, err)
	require.NotEmpty(t, res.Segments)
	assert.Contains(t, res.Segments[0], "Fall Kickoff")
}

func TestHandleInboundEventMatch(t *testing.T) {
	start := time.Now().Add(72 * time.Hour)
	h := newHarness(nil, nil, []*entity.Event{
		{Id: uuid.New(), Name: "Community Potluck", StartAt: &start, Location: "Back Patio"},
	})

	res, err := h.svc.HandleInbound(context.Background(), inbound("when is the community potluck?"))
	require.NoError(t, err)
	require.NotEmpty(t, res.Segments)
	assert.Contains(t, res.Segments[0], "Community Potluck")
	assert.Contains(t, res.Segments[0], "Back Patio")
}

func TestHandleInboundExecutesVote(t *testing.T) {
	pollId := uuid.New()
	proposal := &store.ActionProposal{
		Kind:        "poll_vote",
		PreviewText: "What should we serve at the potluck?",
		Preconditions: map[string]bool{
			"poll_open": true,
			"not_voted": true,
		},
		Payload: map[string]interface{}{
			"poll_id": pollId.String(),
			"options": []interface{}{"Tacos", "BBQ", "Pizza"},
		},
	}
	h := newHarness(nil, proposal, nil)

	res, err := h.svc.HandleInbound(context.Background(), inbound("tacos"))
	require.NoError(t, err)
	require.NotEmpty(t, res.Segments)
	assert.Contains(t, res.Segments[0], "recorded your vote: Tacos")

	require.Len(t, h.uow.polls.votes, 1)
	assert.Equal(t, pollId, h.uow.polls.votes[0].PollId)
	assert.Equal(t, "Tacos", h.uow.polls.votes[0].Option)
}

func TestHandleInboundVoteByNumber(t *testing.T) {
	pollId := uuid.New()
	proposal := &store.ActionProposal{
		Kind:          "poll_vote",
		Preconditions: map[string]bool{"poll_open": true, "not_voted": true},
		Payload: map[string]interface{}{
			"poll_id": pollId.String(),
			"options": []interface{}{"Tacos", "BBQ", "Pizza"},
		},
	}
	h := newHarness(nil, proposal, nil)

	res, err := h.svc.HandleInbound(context.Background(), inbound("2"))
	require.NoError(t, err)
	assert.Contains(t, res.Segments[0], "BBQ")
	require.Len(t, h.uow.polls.votes, 1)
}

func TestHandleInboundVoteBlockedByPrecondition(t *testing.T) {
	proposal := &store.ActionProposal{
		Kind:          "poll_vote",
		Preconditions: map[string]bool{"poll_open": true, "not_voted": false},
		Payload: map[string]interface{}{
			"poll_id": uuid.New().String(),
			"options": []interface{}{"Tacos", "BBQ"},
		},
	}
	h := newHarness(nil, proposal, nil)

	_, err := h.svc.HandleInbound(context.Background(), inbound("tacos"))
	require.NoError(t, err)
	assert.Empty(t, h.uow.polls.votes)
}

func TestHandleInboundBoundary(t *testing.T) {
	h := newHarness(nil, nil, nil)

	res, err := h.svc.HandleInbound(context.Background(), inbound("you slur_alpha people are the worst"))
	require.NoError(t, err)
	require.NotEmpty(t, res.Segments)
	assert.Equal(t, "I'm not going to engage with that.", res.Segments[0])
}

func TestMatchPollOption(t *testing.T) {
	payload := map[string]interface{}{
		"options": []interface{}{"Tacos", "BBQ", "Pizza"},
	}

	assert.Equal(t, "Tacos", matchPollOption("tacos", payload))
	assert.Equal(t, "Tacos", matchPollOption("  TACOS ", payload))
	assert.Equal(t, "Pizza", matchPollOption("3", payload))
	assert.Equal(t, "", matchPollOption("4", payload))
	assert.Equal(t, "", matchPollOption("sushi", payload))
	assert.Equal(t, "", matchPollOption("1", map[string]interface{}{}))
}

func TestIsDigestQuery(t *testing.T) {
	assert.True(t, isDigestQuery("what's on this week?"))
	assert.True(t, isDigestQuery("any events coming up"))
	assert.True(t, isDigestQuery("show me the calendar"))
	assert.False(t, isDigestQuery("where do we park"))
}
