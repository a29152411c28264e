package fusion

import (
	"math"
	"testing"
)

func TestFuse(t *testing.T) {
	tests := []struct {
		name      string
		lists     [][]string
		wantOrder []string
	}{
		{
			name:      "no lists",
			lists:     nil,
			wantOrder: nil,
		},
		{
			name:      "empty lists",
			lists:     [][]string{{}, {}},
			wantOrder: nil,
		},
		{
			name:      "single list preserves order",
			lists:     [][]string{{"a", "b", "c"}},
			wantOrder: []string{"a", "b", "c"},
		},
		{
			name:      "fts and vector lists",
			lists:     [][]string{{"A", "B", "C"}, {"B", "A", "D"}},
			wantOrder: []string{"A", "B", "C", "D"},
		},
		{
			name:      "one signal empty",
			lists:     [][]string{{"x", "y"}, {}},
			wantOrder: []string{"x", "y"},
		},
		{
			name:      "agreement outranks single high rank",
			lists:     [][]string{{"a", "b"}, {"b", "c"}, {"b"}},
			wantOrder: []string{"b", "a", "c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fuse(tt.lists, DefaultK)
			if len(got) != len(tt.wantOrder) {
				t.Fatalf("Fuse returned %d results, want %d", len(got), len(tt.wantOrder))
			}
			for i, id := range tt.wantOrder {
				if got[i].ID != id {
					t.Errorf("position %d = %q, want %q (full: %v)", i, got[i].ID, id, IDs(got))
				}
			}
		})
	}
}

// A at ranks (0,1) and B at ranks (1,0) score identically; the tie must
// resolve the same way on every call. Both share best rank 0, so the ID
// ordering decides: A before B.
func TestFuseTieBreak(t *testing.T) {
	lists := [][]string{{"A", "B"}, {"B", "A"}}

	for i := 0; i < 50; i++ {
		got := Fuse(lists, DefaultK)
		if len(got) != 2 {
			t.Fatalf("got %d results, want 2", len(got))
		}
		if got[0].Score != got[1].Score {
			t.Fatalf("expected equal scores, got %v vs %v", got[0].Score, got[1].Score)
		}
		if got[0].ID != "A" || got[1].ID != "B" {
			t.Fatalf("iteration %d: order %v, want [A B]", i, IDs(got))
		}
	}
}

func TestFuseScores(t *testing.T) {
	got := Fuse([][]string{{"A", "B", "C"}, {"B", "A", "D"}}, 60)

	want := map[string]float64{
		"A": 1.0/61 + 1.0/62,
		"B": 1.0/61 + 1.0/62,
		"C": 1.0 / 63,
		"D": 1.0 / 63,
	}
	for _, f := range got {
		if math.Abs(f.Score-want[f.ID]) > 1e-12 {
			t.Errorf("score(%s) = %v, want %v", f.ID, f.Score, want[f.ID])
		}
	}
}

// Pushing an ID down any input list must never increase its fused score.
func TestFuseMonotonicRank(t *testing.T) {
	base := Fuse([][]string{{"A", "B", "C"}, {"A", "D"}}, 60)
	demoted := Fuse([][]string{{"B", "A", "C"}, {"A", "D"}}, 60)

	scoreOf := func(fs []Fused, id string) float64 {
		for _, f := range fs {
			if f.ID == id {
				return f.Score
			}
		}
		return 0
	}

	if scoreOf(demoted, "A") >= scoreOf(base, "A") {
		t.Errorf("demoting A should lower its score: base=%v demoted=%v",
			scoreOf(base, "A"), scoreOf(demoted, "A"))
	}
}

func TestFuseNonPositiveK(t *testing.T) {
	// k <= 0 falls back to DefaultK instead of producing division artifacts
	got := Fuse([][]string{{"a", "b"}}, 0)
	want := Fuse([][]string{{"a", "b"}}, DefaultK)
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("k=0 result differs from DefaultK at %d: %v vs %v", i, got[i], want[i])
		}
	}
}
