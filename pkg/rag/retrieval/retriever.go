package retrieval

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"sms-assistant-be/pkg/store"
)

// Query carries one retrieval request through every layer.
type Query struct {
	Text   string
	Sender string
	Scope  string
}

// Layer is one independent candidate source. Implementations must return
// items with scores already capped to [0,1] so the merge can compare them
// without cross-layer normalization.
type Layer interface {
	Name() string
	Retrieve(ctx context.Context, q Query) ([]store.LayerItem, error)
}

// Config encapsulates retriever parameters
type Config struct {
	LayerTimeout time.Duration
}

// DefaultConfig returns default retriever configuration
func DefaultConfig() Config {
	return Config{
		LayerTimeout: 3 * time.Second,
	}
}

// Retriever queries all layers concurrently and merges their items into one
// relevance-ordered feed.
type Retriever struct {
	layers []Layer
	config Config
	logger *log.Logger
}

// NewRetriever creates a retriever over the given layers. Layer order is the
// tie-break order in the merge, so register content first.
func NewRetriever(layers []Layer, config Config, logger *log.Logger) *Retriever {
	return &Retriever{
		layers: layers,
		config: config,
		logger: logger,
	}
}

// Retrieve fans out to every layer, absorbs per-layer failures as empty
// results, and returns the concatenated items sorted by score descending.
// An empty query short-circuits without touching any layer.
func (r *Retriever) Retrieve(ctx context.Context, q Query) []store.LayerItem {
	if strings.TrimSpace(q.Text) == "" {
		return nil
	}

	results := make([][]store.LayerItem, len(r.layers))
	var wg sync.WaitGroup

	for i, layer := range r.layers {
		wg.Add(1)
		go func(slot int, l Layer) {
			defer wg.Done()

			layerCtx, cancel := context.WithTimeout(ctx, r.config.LayerTimeout)
			defer cancel()

			items, err := l.Retrieve(layerCtx, q)
			if err != nil {
				// One unavailable layer must never fail the whole retrieval
				r.logger.Printf("[WARN] Layer %s failed, treating as empty: %v", l.Name(), err)
				return
			}
			results[slot] = items
		}(i, layer)
	}

	wg.Wait()

	if ctx.Err() != nil {
		// Caller canceled; partial results are discarded
		return nil
	}

	var merged []store.LayerItem
	for _, items := range results {
		merged = append(merged, items...)
	}

	// Scores are comparable by construction (every layer caps at 1).
	// Ties resolve by layer registration order, then ID, so the merge is a
	// total order.
	layerOrder := make(map[string]int, len(r.layers))
	for i, l := range r.layers {
		layerOrder[l.Name()] = i
	}
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Score != merged[j].Score {
			return merged[i].Score > merged[j].Score
		}
		if layerOrder[merged[i].Layer] != layerOrder[merged[j].Layer] {
			return layerOrder[merged[i].Layer] < layerOrder[merged[j].Layer]
		}
		return merged[i].ID < merged[j].ID
	})

	return merged
}
