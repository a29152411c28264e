package store

import "time"

// Layer identifies one independent candidate source in the retriever.
const (
	LayerContent = "content"
	LayerConvo   = "convo"
	LayerAction  = "action"
	LayerEnclave = "enclave"
)

// Record represents a stored knowledge resource after expansion
type Record struct {
	ID      string                 `json:"id"`
	Title   string                 `json:"title"`
	Kind    string                 `json:"kind"` // "document", "event", "faq", ...
	Body    string                 `json:"body"`
	URL     string                 `json:"url,omitempty"`
	Tag     string                 `json:"tag,omitempty"`
	Score   float32                `json:"score"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

// ActionProposal describes a state-changing operation discovered during
// retrieval. It is never executed by the retrieval pipeline itself; the
// caller checks Preconditions and decides.
type ActionProposal struct {
	Kind          string                 `json:"kind"` // "poll_vote", ...
	PreviewText   string                 `json:"preview_text"`
	Preconditions map[string]bool        `json:"preconditions"`
	Payload       map[string]interface{} `json:"payload"`
}

// LayerItem is one scored candidate emitted by a retrieval layer.
// Immutable once returned by the layer.
type LayerItem struct {
	Layer    string             `json:"layer"`
	ID       string             `json:"id"`
	Title    string             `json:"title,omitempty"`
	Snippet  string             `json:"snippet"`
	URL      string             `json:"url,omitempty"`
	Features map[string]float64 `json:"features,omitempty"`
	Score    float64            `json:"score"`
	Proposal *ActionProposal    `json:"proposal,omitempty"`
}

// HistoryEntry is one prior message in a sender's conversation.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Direction string    `json:"direction"` // "inbound" | "outbound"
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"
)

// Conversation represents the active per-sender session state in memory
type Conversation struct {
	Sender    string    `json:"sender"`
	LastQuery string    `json:"last_query"`
	LastTone  string    `json:"last_tone"`
	UpdatedAt time.Time `json:"updated_at"`
}
