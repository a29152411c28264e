package tone

import (
	"math/rand"
	"testing"
)

func TestDecideBoundaryShortCircuits(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(1)))

	// Any combination of numeric signals must be ignored
	signals := []Signals{
		{InsultTarget: TargetProtected},
		{InsultTarget: TargetProtected, Toxicity: 1, Smalltalk: 1, ContextEdge: 1},
		{InsultTarget: TargetProtected, Toxicity: 0},
	}
	for _, s := range signals {
		d := e.Decide(s)
		if d.Tone != ToneNeutral || d.Policy != PolicyBoundary {
			t.Errorf("Decide(%+v) = %+v, want neutral/boundary", s, d)
		}
		if d.Prefix != BoundaryPrefix {
			t.Errorf("boundary prefix must be the fixed safety message, got %q", d.Prefix)
		}
	}
}

func TestDecideAggregateThresholds(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(1)))

	tests := []struct {
		name     string
		signals  Signals
		wantTone string
	}{
		{"all zero is neutral", Signals{}, ToneNeutral},
		{"just under sass", Signals{Toxicity: 0.6}, ToneNeutral}, // 0.30
		{"sass threshold", Signals{Toxicity: 0.7}, ToneSass},     // 0.35
		{"mid sass", Signals{Toxicity: 0.5, Smalltalk: 0.5, ContextEdge: 0.5}, ToneSass}, // 0.50
		{"spicy", Signals{Toxicity: 1, Smalltalk: 0.5}, ToneSpicy},                       // 0.65
		{"clamped overflow stays spicy", Signals{Toxicity: 5, Smalltalk: 5}, ToneSpicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := e.Decide(tt.signals)
			if d.Tone != tt.wantTone {
				t.Errorf("tone = %q, want %q", d.Tone, tt.wantTone)
			}
			if d.Policy != PolicyOK {
				t.Errorf("policy = %q, want ok", d.Policy)
			}
		})
	}
}

// Prefix choice is intentionally non-deterministic; assert pool membership,
// never an exact string.
func TestDecidePrefixFromPool(t *testing.T) {
	e := NewEngine(rand.New(rand.NewSource(42)))

	inPool := func(pool []string, s string) bool {
		for _, p := range pool {
			if p == s {
				return true
			}
		}
		return false
	}

	for i := 0; i < 20; i++ {
		if d := e.Decide(Signals{Toxicity: 0.8}); !inPool(SassPrefixes, d.Prefix) {
			t.Fatalf("sass prefix %q not in pool", d.Prefix)
		}
		if d := e.Decide(Signals{Toxicity: 1, Smalltalk: 1}); !inPool(SpicyPrefixes, d.Prefix) {
			t.Fatalf("spicy prefix %q not in pool", d.Prefix)
		}
	}
}

func TestDetectInsultTarget(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"what time is chapter", TargetNone},
		{"you are a fucking disaster", TargetOther},
		{"im such a fuckup lol", TargetSelf},
		{"fuck this slur_a nonsense", TargetProtected}, // slur wins over profanity
		{"total shitshow today", TargetNone},           // profanity, no pronoun
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			if got := DetectInsultTarget(tt.message); got != tt.want {
				t.Errorf("DetectInsultTarget(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestDenylistsAreSeparate(t *testing.T) {
	// A profane message must not trip the slur list, and vice versa
	if HasProtectedSlur("fuck this") {
		t.Error("profanity must not match the protected-slur list")
	}
	if !HasProfanity("fuck this") {
		t.Error("profanity list should match")
	}
	if HasProfanity("slur_a") {
		t.Error("slur must not match the profanity list")
	}
	if !HasProtectedSlur("slur_a") {
		t.Error("slur list should match")
	}
}

func TestScoreToxicity(t *testing.T) {
	if got := ScoreToxicity(""); got != 0 {
		t.Errorf("empty message toxicity = %v", got)
	}
	if got := ScoreToxicity("have a nice day"); got != 0 {
		t.Errorf("clean message toxicity = %v", got)
	}
	dirty := ScoreToxicity("fuck this shit")
	if dirty <= 0 || dirty > 1 {
		t.Errorf("toxicity out of range: %v", dirty)
	}
}
