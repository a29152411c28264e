package retrieval

import (
	"context"
	"time"

	"sms-assistant-be/pkg/store"
)

// HistorySource is the conversation-history boundary.
type HistorySource interface {
	RecentHistory(ctx context.Context, sender string, limit int) ([]store.HistoryEntry, error)
}

// ConvoWindow is the fixed number of recent entries the layer surfaces.
const ConvoWindow = 5

// ConvoLayer surfaces the sender's most recent exchanges, scored by recency
// decay so yesterday's messages fade and anything older contributes nothing.
type ConvoLayer struct {
	source HistorySource
	now    func() time.Time
}

func NewConvoLayer(source HistorySource) *ConvoLayer {
	return &ConvoLayer{source: source, now: time.Now}
}

func (l *ConvoLayer) Name() string { return store.LayerConvo }

func (l *ConvoLayer) Retrieve(ctx context.Context, q Query) ([]store.LayerItem, error) {
	entries, err := l.source.RecentHistory(ctx, q.Sender, ConvoWindow)
	if err != nil {
		return nil, err
	}

	now := l.now()
	var items []store.LayerItem
	for _, e := range entries {
		ageDays := now.Sub(e.CreatedAt).Hours() / 24
		score := 1 - ageDays
		if score < 0 {
			score = 0
		}
		items = append(items, store.LayerItem{
			Layer:   store.LayerConvo,
			ID:      e.ID,
			Snippet: e.Body,
			Score:   score,
			Features: map[string]float64{
				"age_days": ageDays,
			},
		})
	}
	return items, nil
}
