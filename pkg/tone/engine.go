package tone

import (
	"math/rand"
)

// Tone is the response register the engine selects.
const (
	ToneNeutral = "neutral"
	ToneSass    = "sass"
	ToneSpicy   = "spicy"
)

// Policy marks whether the reply proceeds normally or behind a safety
// boundary.
const (
	PolicyOK       = "ok"
	PolicyBoundary = "boundary"
)

// BoundaryPrefix is the fixed safety message used whenever the boundary
// policy fires. It is never randomized.
const BoundaryPrefix = "I'm not going to engage with that. "

// Signals are the classified features of an incoming message. All values
// are expected in [0,1]; InsultTarget comes from the detection helpers.
type Signals struct {
	Smalltalk    float64
	Toxicity     float64
	InsultTarget string
	ContextEdge  float64
}

// Insult targets.
const (
	TargetNone      = "none"
	TargetSelf      = "self"
	TargetOther     = "other"
	TargetProtected = "protected"
)

// Decision is the selected register plus optional framing text.
type Decision struct {
	Tone   string `json:"tone"`
	Policy string `json:"policy"`
	Prefix string `json:"prefix,omitempty"`
	Suffix string `json:"suffix,omitempty"`
}

// Engine turns message signals into a tone decision. Prefix selection is
// pseudo-random over fixed pools; inject a seeded rand for reproducible
// tests.
type Engine struct {
	rng *rand.Rand
}

func NewEngine(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// Thresholds on the aggregate score.
const (
	spicyThreshold = 0.65
	sassThreshold  = 0.35
)

// SassPrefixes and SpicyPrefixes are the enumerable pools a non-boundary
// decision draws from. Tests assert membership, not exact strings.
var (
	SassPrefixes = []string{
		"Oh, we're doing this again? ",
		"Bold of you. ",
		"Sure, why not. ",
	}
	SpicyPrefixes = []string{
		"Okay, big talker. ",
		"You really woke up and chose chaos. ",
		"Easy there, champ. ",
	}
)

// Decide selects the response register. A protected insult target
// short-circuits to the boundary policy before any numeric signal is read.
func (e *Engine) Decide(s Signals) Decision {
	if s.InsultTarget == TargetProtected {
		return Decision{
			Tone:   ToneNeutral,
			Policy: PolicyBoundary,
			Prefix: BoundaryPrefix,
		}
	}

	aggregate := clamp(0.5*s.Toxicity + 0.3*s.Smalltalk + 0.2*s.ContextEdge)

	switch {
	case aggregate >= spicyThreshold:
		return Decision{
			Tone:   ToneSpicy,
			Policy: PolicyOK,
			Prefix: e.pick(SpicyPrefixes),
		}
	case aggregate >= sassThreshold:
		return Decision{
			Tone:   ToneSass,
			Policy: PolicyOK,
			Prefix: e.pick(SassPrefixes),
		}
	default:
		return Decision{Tone: ToneNeutral, Policy: PolicyOK}
	}
}

func (e *Engine) pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	if e.rng == nil {
		return pool[0]
	}
	return pool[e.rng.Intn(len(pool))]
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
