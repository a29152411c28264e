package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"sms-assistant-be/internal/constant"
	"sms-assistant-be/internal/dto"
	"sms-assistant-be/internal/entity"
	"sms-assistant-be/internal/pkg/logger"
	"sms-assistant-be/internal/repository/memory"
	"sms-assistant-be/internal/repository/unitofwork"
	"sms-assistant-be/pkg/compose"
	"sms-assistant-be/pkg/events"
	"sms-assistant-be/pkg/llm"
	pktNats "sms-assistant-be/pkg/nats"
	"sms-assistant-be/pkg/rag/retrieval"
	"sms-assistant-be/pkg/rag/window"
	"sms-assistant-be/pkg/sms"
	"sms-assistant-be/pkg/store"
	"sms-assistant-be/pkg/tone"

	"github.com/google/uuid"
)

type IAssistantService interface {
	HandleInbound(ctx context.Context, req *dto.InboundSmsRequest) (*dto.InboundSmsResponse, error)
}

type assistantService struct {
	uowFactory    unitofwork.RepositoryFactory
	retriever     *retrieval.Retriever
	windowBuilder *window.Builder
	toneEngine    *tone.Engine
	llmProvider   llm.LLMProvider
	actionSource  retrieval.ActionSource
	dedup         *memory.InboundDedup
	conversations *memory.ConversationRepository
	eventPub      *pktNats.Publisher
	maxSegment    int
	logger        logger.ILogger
}

func NewAssistantService(
	uowFactory unitofwork.RepositoryFactory,
	retriever *retrieval.Retriever,
	windowBuilder *window.Builder,
	toneEngine *tone.Engine,
	llmProvider llm.LLMProvider,
	actionSource retrieval.ActionSource,
	dedup *memory.InboundDedup,
	conversations *memory.ConversationRepository,
	eventPub *pktNats.Publisher,
	maxSegment int,
	sysLogger logger.ILogger,
) IAssistantService {
	if maxSegment <= 0 {
		maxSegment = sms.DefaultMaxLength
	}
	return &assistantService{
		uowFactory:    uowFactory,
		retriever:     retriever,
		windowBuilder: windowBuilder,
		toneEngine:    toneEngine,
		llmProvider:   llmProvider,
		actionSource:  actionSource,
		dedup:         dedup,
		conversations: conversations,
		eventPub:      eventPub,
		maxSegment:    maxSegment,
		logger:        sysLogger,
	}
}

func (s *assistantService) HandleInbound(ctx context.Context, req *dto.InboundSmsRequest) (*dto.InboundSmsResponse, error) {
	// 1. Dedup: carriers redeliver webhooks. First claim wins.
	fresh, err := s.dedup.Claim(ctx, req.MessageId)
	if err != nil {
		s.logger.Warn("assistant", "Dedup check degraded", map[string]interface{}{"error": err.Error()})
	}
	if !fresh {
		return &dto.InboundSmsResponse{Duplicate: true}, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	inbound := entity.Message{
		Id:        uuid.New(),
		Sender:    req.From,
		Direction: store.DirectionInbound,
		Body:      req.Body,
		CarrierId: req.MessageId,
		CreatedAt: time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &inbound); err != nil {
		return nil, fmt.Errorf("failed to store inbound message: %w", err)
	}

	// 2. Tone signals
	decision := s.decideTone(req.From, req.Body)

	var body string
	switch {
	case decision.Policy == tone.PolicyBoundary:
		body = strings.TrimSpace(decision.Prefix)
	default:
		body = s.answer(ctx, uow, req, decision)
	}

	// 3. Segment for SMS delivery
	segments := sms.Split(body, s.maxSegment)

	// 4. Persist and publish outbound
	outbound := entity.Message{
		Id:        uuid.New(),
		Sender:    req.From,
		Direction: store.DirectionOutbound,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &outbound); err != nil {
		s.logger.Error("assistant", "Failed to store outbound message", map[string]interface{}{"error": err.Error()})
	}

	if s.eventPub != nil {
		evt := events.SmsOutbound{
			Recipient:  req.From,
			Segments:   segments,
			OccurredAt: time.Now(),
		}
		if err := s.eventPub.Publish(ctx, evt); err != nil {
			s.logger.Warn("assistant", "Failed to publish outbound event", map[string]interface{}{"error": err.Error()})
		}
	}

	s.conversations.Save(&store.Conversation{
		Sender:    req.From,
		LastQuery: req.Body,
		LastTone:  decision.Tone,
		UpdatedAt: time.Now(),
	})

	return &dto.InboundSmsResponse{Segments: segments}, nil
}

// decideTone classifies the message and folds in conversational carry-over:
// a sender already in a sass or spicy exchange keeps some edge.
func (s *assistantService) decideTone(sender, body string) tone.Decision {
	var edge float64
	if conv, ok := s.conversations.Get(sender); ok {
		if conv.LastTone == tone.ToneSass || conv.LastTone == tone.ToneSpicy {
			edge = 0.5
		}
	}

	return s.toneEngine.Decide(tone.Signals{
		Smalltalk:    tone.ScoreSmalltalk(body),
		Toxicity:     tone.ScoreToxicity(body),
		InsultTarget: tone.DetectInsultTarget(body),
		ContextEdge:  edge,
	})
}

// answer runs the retrieval pipeline and picks a composition path. The
// structured paths (vote execution, digest, event) are deterministic; the
// LLM path handles everything else and degrades to document extraction.
func (s *assistantService) answer(ctx context.Context, uow unitofwork.UnitOfWork, req *dto.InboundSmsRequest, decision tone.Decision) string {
	// Pending action execution happens here, never inside retrieval.
	if reply, done := s.tryVote(ctx, uow, req.From, req.Body); done {
		return decision.Prefix + reply + decision.Suffix
	}

	var answer compose.Answer
	switch {
	case isDigestQuery(req.Body):
		answer = s.composeDigest(ctx, uow)
	default:
		if event := s.matchEvent(ctx, uow, req.Body); event != nil {
			answer = compose.ComposeEvent(toComposeEvent(event))
		} else {
			answer = s.retrieveAndCompose(ctx, req)
		}
	}

	return decision.Prefix + compose.Render(answer) + decision.Suffix
}

// tryVote executes a pending poll vote when the reply names one of the
// options and every precondition holds.
func (s *assistantService) tryVote(ctx context.Context, uow unitofwork.UnitOfWork, sender, body string) (string, bool) {
	proposal, err := s.actionSource.PendingAction(ctx, sender)
	if err != nil || proposal == nil || proposal.Kind != "poll_vote" {
		return "", false
	}

	for _, ok := range proposal.Preconditions {
		if !ok {
			return "", false
		}
	}

	option := matchPollOption(body, proposal.Payload)
	if option == "" {
		return "", false
	}

	pollIdStr, _ := proposal.Payload["poll_id"].(string)
	pollId, err := uuid.Parse(pollIdStr)
	if err != nil {
		return "", false
	}

	vote := entity.PollVote{
		Id:        uuid.New(),
		PollId:    pollId,
		Sender:    sender,
		Option:    option,
		CreatedAt: time.Now(),
	}
	if err := uow.PollRepository().RecordVote(ctx, &vote); err != nil {
		s.logger.Error("assistant", "Failed to record vote", map[string]interface{}{"error": err.Error()})
		return "Couldn't record your vote, try again in a bit.", true
	}

	return fmt.Sprintf("Got it, recorded your vote: %s", option), true
}

// matchPollOption accepts either the option text or its 1-based number.
func matchPollOption(body string, payload map[string]interface{}) string {
	raw, _ := payload["options"].([]interface{})
	if len(raw) == 0 {
		return ""
	}

	reply := strings.ToLower(strings.TrimSpace(body))
	if n, err := strconv.Atoi(reply); err == nil && n >= 1 && n <= len(raw) {
		if opt, ok := raw[n-1].(string); ok {
			return opt
		}
	}

	for _, o := range raw {
		opt, ok := o.(string)
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(opt), reply) {
			return opt
		}
	}
	return ""
}

func (s *assistantService) composeDigest(ctx context.Context, uow unitofwork.UnitOfWork) compose.Answer {
	upcoming, err := uow.EventRepository().Upcoming(ctx, compose.DigestCap)
	if err != nil {
		s.logger.Error("assistant", "Digest lookup failed", map[string]interface{}{"error": err.Error()})
		return compose.ComposeDigest(nil)
	}

	composeEvents := make([]compose.Event, len(upcoming))
	for i, e := range upcoming {
		composeEvents[i] = toComposeEvent(e)
	}
	return compose.ComposeDigest(composeEvents)
}

// matchEvent answers "when is X" style questions directly from the calendar
// when the query names an upcoming event.
func (s *assistantService) matchEvent(ctx context.Context, uow unitofwork.UnitOfWork, query string) *entity.Event {
	upcoming, err := uow.EventRepository().Upcoming(ctx, 10)
	if err != nil || len(upcoming) == 0 {
		return nil
	}

	lower := strings.ToLower(query)
	for _, e := range upcoming {
		name := strings.ToLower(strings.TrimSpace(e.Name))
		if name != "" && strings.Contains(lower, name) {
			return e
		}
	}
	return nil
}

func (s *assistantService) retrieveAndCompose(ctx context.Context, req *dto.InboundSmsRequest) compose.Answer {
	items := s.retriever.Retrieve(ctx, retrieval.Query{
		Text:   req.Body,
		Sender: req.From,
	})

	records := contentRecords(items)
	if len(records) == 0 {
		return compose.Answer{Headline: "I don't have anything about that yet."}
	}

	if s.llmProvider != nil {
		if reply, err := s.generateReply(ctx, req.Body, records); err == nil {
			return compose.Answer{Headline: reply}
		} else {
			s.logger.Warn("assistant", "LLM reply failed, falling back to extraction", map[string]interface{}{"error": err.Error()})
		}
	}

	return compose.ComposeDocument(records[0], req.Body)
}

func (s *assistantService) generateReply(ctx context.Context, question string, records []store.Record) (string, error) {
	contextWindow := s.windowBuilder.Build(records)

	prompt := fmt.Sprintf("%s\n%s\n%s\n\nQuestion: %s",
		constant.AssistantContextHeader,
		contextWindow,
		constant.AssistantContextFooter,
		question,
	)

	reply, err := s.llmProvider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.AssistantSystemPromptV1},
		{Role: constant.ChatMessageRoleUser, Content: prompt},
	}, llm.WithTemperature(0.3))
	if err != nil {
		return "", err
	}

	reply = compose.Sanitize(reply)
	if strings.TrimSpace(reply) == "" {
		return "", fmt.Errorf("empty model reply")
	}
	return reply, nil
}

// contentRecords converts ranked layer items into window-ready records.
// Convo items are advisory context, not answer material, so they are skipped.
func contentRecords(items []store.LayerItem) []store.Record {
	var records []store.Record
	for _, item := range items {
		if item.Layer == store.LayerConvo {
			continue
		}
		records = append(records, store.Record{
			ID:    item.ID,
			Title: item.Title,
			Kind:  item.Layer,
			Body:  item.Snippet,
			URL:   item.URL,
			Score: float32(item.Score),
		})
	}
	return records
}

func toComposeEvent(e *entity.Event) compose.Event {
	return compose.Event{
		Name:     e.Name,
		StartAt:  e.StartAt,
		Location: e.Location,
		Required: e.Required,
	}
}

var digestCues = []string{"upcoming", "this week", "calendar", "what's on", "whats on", "any events"}

func isDigestQuery(text string) bool {
	lower := strings.ToLower(text)
	for _, cue := range digestCues {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}
