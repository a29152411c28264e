package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "sms.outbound").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a generic implementation used when reconstructing
// events from the wire.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// SmsOutbound is emitted after an answer has been segmented and is
// ready for carrier delivery.
type SmsOutbound struct {
	Recipient  string
	Segments   []string
	OccurredAt time.Time
}

func (e SmsOutbound) EventType() string { return "sms.outbound" }

func (e SmsOutbound) Payload() map[string]interface{} {
	return map[string]interface{}{
		"recipient": e.Recipient,
		"segments":  e.Segments,
	}
}

func (e SmsOutbound) Timestamp() time.Time { return e.OccurredAt }

// ResourceCreated is emitted when a new resource is stored and needs
// its embeddings generated.
type ResourceCreated struct {
	ResourceID string
	OccurredAt time.Time
}

func (e ResourceCreated) EventType() string { return "resource.created" }

func (e ResourceCreated) Payload() map[string]interface{} {
	return map[string]interface{}{
		"resource_id": e.ResourceID,
	}
}

func (e ResourceCreated) Timestamp() time.Time { return e.OccurredAt }

// ResourceEmbedded is emitted once embedding generation for a resource
// has finished.
type ResourceEmbedded struct {
	ResourceID string
	Chunks     int
	OccurredAt time.Time
}

func (e ResourceEmbedded) EventType() string { return "resource.embedded" }

func (e ResourceEmbedded) Payload() map[string]interface{} {
	return map[string]interface{}{
		"resource_id": e.ResourceID,
		"chunks":      e.Chunks,
	}
}

func (e ResourceEmbedded) Timestamp() time.Time { return e.OccurredAt }
