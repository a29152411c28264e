package retrieval

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"sms-assistant-be/pkg/store"
)

type stubLayer struct {
	name  string
	items []store.LayerItem
	err   error
}

func (s *stubLayer) Name() string { return s.name }

func (s *stubLayer) Retrieve(ctx context.Context, q Query) ([]store.LayerItem, error) {
	return s.items, s.err
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestRetrieveMergesByScore(t *testing.T) {
	r := NewRetriever([]Layer{
		&stubLayer{name: store.LayerContent, items: []store.LayerItem{
			{Layer: store.LayerContent, ID: "doc-1", Score: 1.0},
			{Layer: store.LayerContent, ID: "doc-2", Score: 0.5},
		}},
		&stubLayer{name: store.LayerConvo, items: []store.LayerItem{
			{Layer: store.LayerConvo, ID: "msg-1", Score: 0.8},
		}},
	}, DefaultConfig(), testLogger())

	items := r.Retrieve(context.Background(), Query{Text: "when is the meeting", Sender: "+15550001"})

	wantOrder := []string{"doc-1", "msg-1", "doc-2"}
	if len(items) != len(wantOrder) {
		t.Fatalf("got %d items, want %d", len(items), len(wantOrder))
	}
	for i, id := range wantOrder {
		if items[i].ID != id {
			t.Errorf("position %d = %q, want %q", i, items[i].ID, id)
		}
	}
}

func TestRetrieveAbsorbsLayerFailure(t *testing.T) {
	r := NewRetriever([]Layer{
		&stubLayer{name: store.LayerContent, err: errors.New("backend down")},
		&stubLayer{name: store.LayerEnclave, items: []store.LayerItem{
			{Layer: store.LayerEnclave, ID: "enclave:dues", Score: 0.4},
		}},
	}, DefaultConfig(), testLogger())

	items := r.Retrieve(context.Background(), Query{Text: "dues", Sender: "+15550001"})

	if len(items) != 1 || items[0].ID != "enclave:dues" {
		t.Fatalf("expected surviving layer's item, got %v", items)
	}
}

func TestRetrieveSlowLayerAbsorbedAtTimeout(t *testing.T) {
	slow := layerFunc(func(ctx context.Context, q Query) ([]store.LayerItem, error) {
		select {
		case <-time.After(time.Second):
			return []store.LayerItem{{Layer: store.LayerContent, ID: "late", Score: 1.0}}, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	})

	r := NewRetriever([]Layer{
		slow,
		&stubLayer{name: store.LayerEnclave, items: []store.LayerItem{
			{Layer: store.LayerEnclave, ID: "enclave:wifi", Score: 0.4},
		}},
	}, Config{LayerTimeout: 20 * time.Millisecond}, testLogger())

	start := time.Now()
	items := r.Retrieve(context.Background(), Query{Text: "wifi password", Sender: "+15550001"})

	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("retrieve blocked on the slow layer for %v", elapsed)
	}
	if len(items) != 1 || items[0].ID != "enclave:wifi" {
		t.Fatalf("expected only the fast layer's item, got %v", items)
	}
}

func TestRetrieveCanceledContextReturnsNil(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRetriever([]Layer{
		&stubLayer{name: store.LayerContent, items: []store.LayerItem{
			{Layer: store.LayerContent, ID: "doc-1", Score: 0.9},
		}},
	}, DefaultConfig(), testLogger())

	if items := r.Retrieve(ctx, Query{Text: "anything", Sender: "+15550001"}); items != nil {
		t.Errorf("expected nil after caller cancellation, got %v", items)
	}
}

func TestRetrieveEmptyQueryShortCircuits(t *testing.T) {
	called := false
	layer := layerFunc(func(ctx context.Context, q Query) ([]store.LayerItem, error) {
		called = true
		return nil, nil
	})

	r := NewRetriever([]Layer{layer}, DefaultConfig(), testLogger())
	items := r.Retrieve(context.Background(), Query{Text: "   ", Sender: "+15550001"})

	if items != nil {
		t.Errorf("expected nil items for empty query, got %v", items)
	}
	if called {
		t.Error("no layer should be queried for an empty query")
	}
}

func TestRetrieveTieBreaksByLayerOrder(t *testing.T) {
	r := NewRetriever([]Layer{
		&stubLayer{name: store.LayerContent, items: []store.LayerItem{
			{Layer: store.LayerContent, ID: "b", Score: 0.7},
		}},
		&stubLayer{name: store.LayerConvo, items: []store.LayerItem{
			{Layer: store.LayerConvo, ID: "a", Score: 0.7},
		}},
	}, DefaultConfig(), testLogger())

	items := r.Retrieve(context.Background(), Query{Text: "tie", Sender: "x"})
	if items[0].Layer != store.LayerContent {
		t.Errorf("content layer should win score ties, got %s first", items[0].Layer)
	}
}

type layerFunc func(ctx context.Context, q Query) ([]store.LayerItem, error)

func (f layerFunc) Name() string { return "func" }
func (f layerFunc) Retrieve(ctx context.Context, q Query) ([]store.LayerItem, error) {
	return f(ctx, q)
}

// --- convo layer ---

type stubHistory struct {
	entries []store.HistoryEntry
	err     error
}

func (s *stubHistory) RecentHistory(ctx context.Context, sender string, limit int) ([]store.HistoryEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(s.entries) > limit {
		return s.entries[:limit], nil
	}
	return s.entries, nil
}

func TestConvoLayerRecencyDecay(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	layer := NewConvoLayer(&stubHistory{entries: []store.HistoryEntry{
		{ID: "m1", Body: "fresh", CreatedAt: now.Add(-6 * time.Hour)},
		{ID: "m2", Body: "halfday", CreatedAt: now.Add(-12 * time.Hour)},
		{ID: "m3", Body: "ancient", CreatedAt: now.Add(-72 * time.Hour)},
	}})
	layer.now = func() time.Time { return now }

	items, err := layer.Retrieve(context.Background(), Query{Sender: "+15550001"})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	if items[0].Score <= items[1].Score {
		t.Errorf("fresher entry should score higher: %v vs %v", items[0].Score, items[1].Score)
	}
	if items[2].Score != 0 {
		t.Errorf("entries older than a day clamp to 0, got %v", items[2].Score)
	}
}

// --- action layer ---

type stubAction struct {
	proposal *store.ActionProposal
	err      error
}

func (s *stubAction) PendingAction(ctx context.Context, sender string) (*store.ActionProposal, error) {
	return s.proposal, s.err
}

func TestActionLayer(t *testing.T) {
	t.Run("pending poll surfaces one item", func(t *testing.T) {
		layer := NewActionLayer(&stubAction{proposal: &store.ActionProposal{
			Kind:        "poll_vote",
			PreviewText: "Vote: formal venue?",
		}})
		items, err := layer.Retrieve(context.Background(), Query{Sender: "+15550001"})
		if err != nil {
			t.Fatal(err)
		}
		if len(items) != 1 {
			t.Fatalf("got %d items, want 1", len(items))
		}
		if items[0].Proposal == nil || items[0].Proposal.Kind != "poll_vote" {
			t.Errorf("item should carry the proposal, got %+v", items[0])
		}
	})

	t.Run("nothing pending is not an error", func(t *testing.T) {
		layer := NewActionLayer(&stubAction{})
		items, err := layer.Retrieve(context.Background(), Query{Sender: "+15550001"})
		if err != nil {
			t.Fatal(err)
		}
		if len(items) != 0 {
			t.Errorf("expected no items, got %v", items)
		}
	})
}

// --- enclave layer ---

func TestEnclaveLayerOverlap(t *testing.T) {
	sections := []CorpusSection{
		{ID: "enclave:dues", Title: "Dues", Body: "Dues are collected every semester through the treasurer."},
		{ID: "enclave:parking", Title: "Parking", Body: "Guest parking is behind the annex."},
	}
	layer := NewEnclaveLayer(sections)

	t.Run("zero overlap yields zero items", func(t *testing.T) {
		items, err := layer.Retrieve(context.Background(), Query{Text: "weather tomorrow forecast"})
		if err != nil {
			t.Fatal(err)
		}
		if len(items) != 0 {
			t.Errorf("expected no items, got %v", items)
		}
	})

	t.Run("matching section scores capped ratio", func(t *testing.T) {
		items, err := layer.Retrieve(context.Background(), Query{Text: "when are dues collected"})
		if err != nil {
			t.Fatal(err)
		}
		if len(items) != 1 || items[0].ID != "enclave:dues" {
			t.Fatalf("expected dues section, got %v", items)
		}
		if items[0].Score <= 0 || items[0].Score > 1 {
			t.Errorf("score must be in (0,1], got %v", items[0].Score)
		}
	})
}

func TestOverlapRatioFloor(t *testing.T) {
	// one query term, one hit: denominator floors at 3
	got := overlapRatio([]string{"dues"}, "dues info")
	if got != 1.0/3.0 {
		t.Errorf("overlapRatio = %v, want 1/3", got)
	}
}

func TestParseCorpus(t *testing.T) {
	raw := "intro ignored\n## Dues\nSemester dues.\n\n## House Rules\nQuiet hours after 11."
	sections := ParseCorpus(raw)
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	if sections[0].ID != "enclave:dues" || sections[0].Body != "Semester dues." {
		t.Errorf("unexpected first section: %+v", sections[0])
	}
	if sections[1].Title != "House Rules" {
		t.Errorf("unexpected second section title: %q", sections[1].Title)
	}
}
