package service

import (
	"context"

	"sms-assistant-be/internal/constant"
	"sms-assistant-be/internal/entity"
	"sms-assistant-be/internal/repository/specification"
	"sms-assistant-be/internal/repository/unitofwork"
	"sms-assistant-be/pkg/rag/retrieval"
	"sms-assistant-be/pkg/store"

	"github.com/google/uuid"
)

// storageSources adapts the repository layer to the retrieval package's
// source boundaries (content signals, substring scans, history, actions).
type storageSources struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewStorageSources(uowFactory unitofwork.RepositoryFactory) *storageSources {
	return &storageSources{uowFactory: uowFactory}
}

// --- retrieval.ContentSources ---

func (s *storageSources) FullTextSearch(ctx context.Context, query, scope string, limit int) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	ids, err := uow.ResourceRepository().FullTextSearch(ctx, query, scope, limit)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out, nil
}

func (s *storageSources) VectorSearch(ctx context.Context, queryEmbedding []float32, scope string, limit int) ([]string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.ResourceEmbeddingRepository().SearchSimilarWithScore(ctx, queryEmbedding, scope, limit)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(scored))
	for i, sc := range scored {
		out[i] = sc.Embedding.ResourceId.String()
	}
	return out, nil
}

func (s *storageSources) ChunkVectorSearch(ctx context.Context, queryEmbedding []float32, scope string, limit int) ([]retrieval.ChunkHit, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.ChunkEmbeddingRepository().SearchSimilarWithScore(ctx, queryEmbedding, scope, limit)
	if err != nil {
		return nil, err
	}
	hits := make([]retrieval.ChunkHit, len(scored))
	for i, sc := range scored {
		hits[i] = retrieval.ChunkHit{
			ResourceID: sc.Embedding.ResourceId.String(),
			Score:      sc.Similarity,
		}
	}
	return hits, nil
}

func (s *storageSources) ExpandRecords(ctx context.Context, ids []string) ([]store.Record, error) {
	uuids := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		parsed, err := uuid.Parse(id)
		if err != nil {
			continue // non-UUID ids cannot come from this storage
		}
		uuids = append(uuids, parsed)
	}
	if len(uuids) == 0 {
		return nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	resources, err := uow.ResourceRepository().FindAll(ctx, specification.ByIDs{IDs: uuids})
	if err != nil {
		return nil, err
	}

	records := make([]store.Record, len(resources))
	for i, r := range resources {
		records[i] = toRecord(r)
	}
	return records, nil
}

// --- retrieval.Scanner (lexical fallbacks) ---

// ScanSubstring matches against titles first, then bodies, dedupes by ID and
// honors the limit. TitleScan narrows the result to title matches itself.
func (s *storageSources) ScanSubstring(ctx context.Context, term, scope string, limit int) ([]store.Record, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	byTitle, err := uow.ResourceRepository().ScanTitleSubstring(ctx, term, scope, limit)
	if err != nil {
		return nil, err
	}
	byBody, err := uow.ResourceRepository().ScanBodySubstring(ctx, term, scope, limit)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool)
	var records []store.Record
	for _, r := range append(byTitle, byBody...) {
		if seen[r.Id] {
			continue
		}
		seen[r.Id] = true
		records = append(records, toRecord(r))
		if len(records) >= limit {
			break
		}
	}
	return records, nil
}

// --- retrieval.HistorySource ---

func (s *storageSources) RecentHistory(ctx context.Context, sender string, limit int) ([]store.HistoryEntry, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.MessageRepository().RecentBySender(ctx, sender, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]store.HistoryEntry, len(messages))
	for i, m := range messages {
		entries[i] = store.HistoryEntry{
			ID:        m.Id.String(),
			Sender:    m.Sender,
			Direction: m.Direction,
			Body:      m.Body,
			CreatedAt: m.CreatedAt,
		}
	}
	return entries, nil
}

// --- retrieval.ActionSource ---

func (s *storageSources) PendingAction(ctx context.Context, sender string) (*store.ActionProposal, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	poll, err := uow.PollRepository().OpenWithoutVote(ctx, sender)
	if err != nil {
		return nil, err
	}
	if poll == nil {
		return nil, nil
	}

	options := make([]interface{}, len(poll.Options))
	for i, o := range poll.Options {
		options[i] = o
	}

	return &store.ActionProposal{
		Kind:        "poll_vote",
		PreviewText: poll.Question,
		Preconditions: map[string]bool{
			"poll_open": poll.Status == constant.PollStatusOpen,
			"not_voted": true,
		},
		Payload: map[string]interface{}{
			"poll_id": poll.Id.String(),
			"options": options,
		},
	}, nil
}

func toRecord(r *entity.Resource) store.Record {
	return store.Record{
		ID:    r.Id.String(),
		Title: r.Title,
		Kind:  r.Kind,
		Body:  r.Body,
		URL:   r.URL,
		Tag:   r.Tag,
	}
}
