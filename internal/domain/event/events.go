package event

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent represents something that happened to an event aggregate.
// Payload fields are exported with JSON tags so publishers can serialize
// events directly onto the wire.
type DomainEvent interface {
	// EventName returns the name of the event, used as the routing key.
	EventName() string
	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time
	// AggregateID returns the ID of the aggregate this event belongs to.
	AggregateID() uuid.UUID
}

// BaseEvent contains common fields for all domain events.
type BaseEvent struct {
	EventID uuid.UUID `json:"eventId"`
	At      time.Time `json:"occurredAt"`
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.At
}

// AggregateID returns the aggregate ID.
func (e BaseEvent) AggregateID() uuid.UUID {
	return e.EventID
}

// CreatedEvent is raised when an event is created.
type CreatedEvent struct {
	BaseEvent
	Name        string    `json:"name"`
	OrganizerID uuid.UUID `json:"organizerId"`
	Date        string    `json:"eventDate"`
}

// EventName returns the event name.
func (e CreatedEvent) EventName() string {
	return "event.created"
}

// NewCreatedEvent creates a new CreatedEvent.
func NewCreatedEvent(id uuid.UUID, name string, organizerID uuid.UUID, date EventDate, at time.Time) CreatedEvent {
	return CreatedEvent{
		BaseEvent:   BaseEvent{EventID: id, At: at},
		Name:        name,
		OrganizerID: organizerID,
		Date:        date.String(),
	}
}

// EditedEvent is raised when a draft event's details are replaced.
type EditedEvent struct {
	BaseEvent
	Name string `json:"name"`
}

// EventName returns the event name.
func (e EditedEvent) EventName() string {
	return "event.edited"
}

// NewEditedEvent creates a new EditedEvent.
func NewEditedEvent(id uuid.UUID, name string, at time.Time) EditedEvent {
	return EditedEvent{
		BaseEvent: BaseEvent{EventID: id, At: at},
		Name:      name,
	}
}

// PaymentStartedEvent is raised when the publication payment begins.
type PaymentStartedEvent struct {
	BaseEvent
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
}

// EventName returns the event name.
func (e PaymentStartedEvent) EventName() string {
	return "event.payment_started"
}

// NewPaymentStartedEvent creates a new PaymentStartedEvent.
func NewPaymentStartedEvent(id uuid.UUID, transactionID string, amount float64, at time.Time) PaymentStartedEvent {
	return PaymentStartedEvent{
		BaseEvent:     BaseEvent{EventID: id, At: at},
		TransactionID: transactionID,
		Amount:        amount,
	}
}

// PublishedEvent is raised when an event becomes publicly visible.
type PublishedEvent struct {
	BaseEvent
	Name        string    `json:"name"`
	OrganizerID uuid.UUID `json:"organizerId"`
}

// EventName returns the event name.
func (e PublishedEvent) EventName() string {
	return "event.published"
}

// NewPublishedEvent creates a new PublishedEvent.
func NewPublishedEvent(id uuid.UUID, name string, organizerID uuid.UUID, at time.Time) PublishedEvent {
	return PublishedEvent{
		BaseEvent:   BaseEvent{EventID: id, At: at},
		Name:        name,
		OrganizerID: organizerID,
	}
}

// StartedEvent is raised when an event begins.
type StartedEvent struct {
	BaseEvent
}

// EventName returns the event name.
func (e StartedEvent) EventName() string {
	return "event.started"
}

// NewStartedEvent creates a new StartedEvent.
func NewStartedEvent(id uuid.UUID, at time.Time) StartedEvent {
	return StartedEvent{BaseEvent: BaseEvent{EventID: id, At: at}}
}

// FinishedEvent is raised when an event ends.
type FinishedEvent struct {
	BaseEvent
}

// EventName returns the event name.
func (e FinishedEvent) EventName() string {
	return "event.finished"
}

// NewFinishedEvent creates a new FinishedEvent.
func NewFinishedEvent(id uuid.UUID, at time.Time) FinishedEvent {
	return FinishedEvent{BaseEvent: BaseEvent{EventID: id, At: at}}
}

// CancelledEvent is raised when an event is cancelled.
type CancelledEvent struct {
	BaseEvent
	Reason string `json:"reason"`
}

// EventName returns the event name.
func (e CancelledEvent) EventName() string {
	return "event.cancelled"
}

// NewCancelledEvent creates a new CancelledEvent.
func NewCancelledEvent(id uuid.UUID, reason string, at time.Time) CancelledEvent {
	return CancelledEvent{
		BaseEvent: BaseEvent{EventID: id, At: at},
		Reason:    reason,
	}
}
