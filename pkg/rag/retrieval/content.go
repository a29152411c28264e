package retrieval

import (
	"context"
	"log"
	"sync"

	"sms-assistant-be/pkg/embedding"
	"sms-assistant-be/pkg/rag/fusion"
	"sms-assistant-be/pkg/store"
)

// ChunkHit is one chunk-level vector match before reduction to its parent
// resource.
type ChunkHit struct {
	ResourceID string
	Score      float64
}

// ContentSources is the storage boundary for the content layer. Any backend
// that can answer these four calls can serve it; failures are absorbed as
// empty signals upstream.
type ContentSources interface {
	FullTextSearch(ctx context.Context, query, scope string, limit int) ([]string, error)
	VectorSearch(ctx context.Context, queryEmbedding []float32, scope string, limit int) ([]string, error)
	ChunkVectorSearch(ctx context.Context, queryEmbedding []float32, scope string, limit int) ([]ChunkHit, error)
	ExpandRecords(ctx context.Context, ids []string) ([]store.Record, error)
}

// ContentConfig encapsulates content-layer search parameters
type ContentConfig struct {
	SignalLimit int
	FusionK     int
}

// DefaultContentConfig returns default content-layer configuration
func DefaultContentConfig() ContentConfig {
	return ContentConfig{
		SignalLimit: 10,
		FusionK:     fusion.DefaultK,
	}
}

// ContentLayer fuses full-text, resource-vector and chunk-vector signals via
// RRF, expands the fused IDs to full records, and falls back to an ordered
// list of lexical strategies when fusion yields nothing.
type ContentLayer struct {
	sources           ContentSources
	embeddingProvider embedding.EmbeddingProvider
	fallbacks         []Strategy
	config            ContentConfig
	logger            *log.Logger
}

// NewContentLayer creates the content layer. Fallback strategies are tried in
// order only when all three signals come back empty.
func NewContentLayer(
	sources ContentSources,
	embeddingProvider embedding.EmbeddingProvider,
	fallbacks []Strategy,
	config ContentConfig,
	logger *log.Logger,
) *ContentLayer {
	return &ContentLayer{
		sources:           sources,
		embeddingProvider: embeddingProvider,
		fallbacks:         fallbacks,
		config:            config,
		logger:            logger,
	}
}

func (l *ContentLayer) Name() string { return store.LayerContent }

func (l *ContentLayer) Retrieve(ctx context.Context, q Query) ([]store.LayerItem, error) {
	lists := l.gatherSignals(ctx, q)

	fused := fusion.Fuse(lists, l.config.FusionK)
	if len(fused) == 0 {
		return l.runFallbacks(ctx, q)
	}

	records, err := l.expandInFusedOrder(ctx, fused)
	if err != nil {
		l.logger.Printf("[WARN] Record expansion failed: %v", err)
		return l.runFallbacks(ctx, q)
	}

	items := make([]store.LayerItem, 0, len(records))
	for rank, rec := range records {
		items = append(items, store.LayerItem{
			Layer:   store.LayerContent,
			ID:      rec.ID,
			Title:   rec.Title,
			Snippet: rec.Body,
			URL:     rec.URL,
			// Rank-based cap keeps content scores comparable with the
			// recency/overlap layers, which are bounded by 1.
			Score: 1.0 / float64(1+rank),
			Features: map[string]float64{
				"fused_score": fused[rank].Score,
			},
		})
	}
	return items, nil
}

// gatherSignals issues the three searches concurrently. None depends on
// another's result; a failed signal is an empty list, not an error.
func (l *ContentLayer) gatherSignals(ctx context.Context, q Query) [][]string {
	queryEmbedding := l.embedQuery(q.Text)

	var (
		wg       sync.WaitGroup
		ftsIDs   []string
		vecIDs   []string
		chunkIDs []string
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		ids, err := l.sources.FullTextSearch(ctx, q.Text, q.Scope, l.config.SignalLimit)
		if err != nil {
			l.logger.Printf("[WARN] Full-text signal failed: %v", err)
			return
		}
		ftsIDs = ids
	}()

	if queryEmbedding != nil {
		wg.Add(2)
		go func() {
			defer wg.Done()
			ids, err := l.sources.VectorSearch(ctx, queryEmbedding, q.Scope, l.config.SignalLimit)
			if err != nil {
				l.logger.Printf("[WARN] Vector signal failed: %v", err)
				return
			}
			vecIDs = ids
		}()
		go func() {
			defer wg.Done()
			hits, err := l.sources.ChunkVectorSearch(ctx, queryEmbedding, q.Scope, l.config.SignalLimit*3)
			if err != nil {
				l.logger.Printf("[WARN] Chunk-vector signal failed: %v", err)
				return
			}
			chunkIDs = reduceChunks(hits)
		}()
	}

	wg.Wait()
	return [][]string{ftsIDs, vecIDs, chunkIDs}
}

// embedQuery returns nil when the embedding service is unavailable, which
// short-circuits both vector signals to empty contributions.
func (l *ContentLayer) embedQuery(text string) []float32 {
	if l.embeddingProvider == nil {
		return nil
	}
	res, err := l.embeddingProvider.Generate(text, "RETRIEVAL_QUERY")
	if err != nil {
		l.logger.Printf("[WARN] Query embedding failed: %v", err)
		return nil
	}
	if res == nil || len(res.Embedding.Values) == 0 {
		return nil
	}
	return res.Embedding.Values
}

// reduceChunks keeps the best-scoring chunk per resource and returns the
// resource IDs ordered best-first, ready for fusion.
func reduceChunks(hits []ChunkHit) []string {
	best := make(map[string]float64)
	var order []string
	for _, h := range hits {
		if prev, seen := best[h.ResourceID]; !seen {
			best[h.ResourceID] = h.Score
			order = append(order, h.ResourceID)
		} else if h.Score > prev {
			best[h.ResourceID] = h.Score
		}
	}

	// Re-rank by best score; hits usually arrive sorted, but the reduction
	// may have promoted a later chunk.
	sortByScore(order, best)
	return order
}

func sortByScore(ids []string, score map[string]float64) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && score[ids[j]] > score[ids[j-1]]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}

// expandInFusedOrder hydrates fused IDs to full records while preserving the
// fused order via an explicit order map. Storage-layer ordering is never
// trusted. Duplicate IDs keep their first fused occurrence.
func (l *ContentLayer) expandInFusedOrder(ctx context.Context, fused []fusion.Fused) ([]store.Record, error) {
	orderMap := make(map[string]int, len(fused))
	ids := make([]string, 0, len(fused))
	for _, f := range fused {
		if _, seen := orderMap[f.ID]; seen {
			continue
		}
		orderMap[f.ID] = len(ids)
		ids = append(ids, f.ID)
	}

	records, err := l.sources.ExpandRecords(ctx, ids)
	if err != nil {
		return nil, err
	}

	ordered := make([]*store.Record, len(ids))
	for i := range records {
		rec := records[i]
		if pos, ok := orderMap[rec.ID]; ok && ordered[pos] == nil {
			ordered[pos] = &rec
		}
	}

	result := make([]store.Record, 0, len(records))
	for _, rec := range ordered {
		if rec != nil {
			result = append(result, *rec)
		}
	}
	return result, nil
}

func (l *ContentLayer) runFallbacks(ctx context.Context, q Query) ([]store.LayerItem, error) {
	for _, strategy := range l.fallbacks {
		records, err := strategy.Run(ctx, q)
		if err != nil {
			l.logger.Printf("[WARN] Fallback %s failed: %v", strategy.Name(), err)
			continue
		}
		if len(records) == 0 {
			continue
		}
		l.logger.Printf("[INFO] Fallback %s produced %d records", strategy.Name(), len(records))

		items := make([]store.LayerItem, 0, len(records))
		for rank, rec := range records {
			items = append(items, store.LayerItem{
				Layer:   store.LayerContent,
				ID:      rec.ID,
				Title:   rec.Title,
				Snippet: rec.Body,
				URL:     rec.URL,
				Score:   1.0 / float64(1+rank),
				Features: map[string]float64{
					"fallback": 1,
				},
			})
		}
		return items, nil
	}
	return nil, nil
}
