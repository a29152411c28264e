package dto

// InboundSmsRequest is the carrier webhook payload.
type InboundSmsRequest struct {
	MessageId string `json:"message_id" validate:"required"`
	From      string `json:"from" validate:"required,e164"`
	Body      string `json:"body" validate:"required"`
}

// InboundSmsResponse returns the segments queued for delivery. Carriers that
// deliver synchronously can send them directly; others ignore this and
// consume the outbound event stream.
type InboundSmsResponse struct {
	Segments  []string `json:"segments"`
	Duplicate bool     `json:"duplicate"`
}
