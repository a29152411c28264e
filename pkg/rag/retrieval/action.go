package retrieval

import (
	"context"

	"sms-assistant-be/pkg/store"
)

// ActionSource is the pending-action boundary. A nil proposal with nil error
// means the sender has nothing outstanding; absence is not an error.
type ActionSource interface {
	PendingAction(ctx context.Context, sender string) (*store.ActionProposal, error)
}

// ActionLayer surfaces at most one actionable item per sender, such as an
// open poll awaiting their vote. The proposal is carried on the item and
// never executed here.
type ActionLayer struct {
	source ActionSource
}

func NewActionLayer(source ActionSource) *ActionLayer {
	return &ActionLayer{source: source}
}

func (l *ActionLayer) Name() string { return store.LayerAction }

// ActionScore is fixed: a pending action is always surfaced near the top but
// below a strong content hit.
const ActionScore = 0.9

func (l *ActionLayer) Retrieve(ctx context.Context, q Query) ([]store.LayerItem, error) {
	proposal, err := l.source.PendingAction(ctx, q.Sender)
	if err != nil {
		return nil, err
	}
	if proposal == nil {
		return nil, nil
	}

	return []store.LayerItem{{
		Layer:    store.LayerAction,
		ID:       "action:" + proposal.Kind,
		Snippet:  proposal.PreviewText,
		Score:    ActionScore,
		Proposal: proposal,
	}}, nil
}
