package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "INVOICE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a generic implementation for ad-hoc events.
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

// InvoiceCreatedEvent is emitted after an invoice row is committed.
type InvoiceCreatedEvent struct {
	BaseEvent
}

func NewInvoiceCreatedEvent(userId, invoiceId, invoiceNumber string, totalAmount float64) InvoiceCreatedEvent {
	return InvoiceCreatedEvent{BaseEvent{
		Type: "INVOICE_CREATED",
		Data: map[string]interface{}{
			"user_id":        userId,
			"invoice_id":     invoiceId,
			"invoice_number": invoiceNumber,
			"total_amount":   totalAmount,
		},
		OccurredAt: time.Now(),
	}}
}
