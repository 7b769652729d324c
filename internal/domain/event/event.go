package event

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eventhive/events-service/internal/errors"
)

// defaultCancelReason is recorded when a cancellation gives no reason.
const defaultCancelReason = "no reason given"

// Event is the aggregate root for the event lifecycle. All state changes
// go through its operations; every successful mutation bumps the version
// and returns the domain events it emitted.
type Event struct {
	id          uuid.UUID
	name        string
	description string
	category    string
	date        EventDate
	duration    EventDuration
	status      Status
	organizerID uuid.UUID
	venueID     uuid.UUID

	publicationFee       float64
	paymentTransactionID string

	createdAt   time.Time
	publishedAt *time.Time
	version     int
	sections    []Section
}

// CreateParams carries the inputs for creating a new event.
type CreateParams struct {
	Name           string
	Description    string
	Date           EventDate
	Duration       EventDuration
	OrganizerID    uuid.UUID
	VenueID        uuid.UUID
	Category       string
	PublicationFee float64
	Sections       []Section
}

// Create builds a new draft event. The returned events must be published
// after the aggregate has been persisted.
func Create(p CreateParams) (*Event, []DomainEvent, error) {
	const op = "event.Create"

	if strings.TrimSpace(p.Name) == "" {
		return nil, nil, errors.InvalidArgument(op, "event name is required")
	}
	if p.Date.IsZero() {
		return nil, nil, errors.InvalidArgument(op, "event date is required")
	}
	if p.Duration.IsZero() {
		return nil, nil, errors.InvalidArgument(op, "event duration is required")
	}
	if p.OrganizerID == uuid.Nil {
		return nil, nil, errors.InvalidArgument(op, "organizer id is required")
	}
	if p.VenueID == uuid.Nil {
		return nil, nil, errors.InvalidArgument(op, "venue id is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return nil, nil, errors.InvalidArgument(op, "event category is required")
	}
	if p.PublicationFee < 0 {
		return nil, nil, errors.InvalidArgument(op, "publication fee cannot be negative")
	}
	if err := validateSections(op, p.Sections); err != nil {
		return nil, nil, err
	}

	now := time.Now()
	e := &Event{
		id:             uuid.New(),
		name:           strings.TrimSpace(p.Name),
		description:    strings.TrimSpace(p.Description),
		category:       strings.TrimSpace(p.Category),
		date:           p.Date,
		duration:       p.Duration,
		status:         StatusDraft,
		organizerID:    p.OrganizerID,
		venueID:        p.VenueID,
		publicationFee: round2(p.PublicationFee),
		createdAt:      now,
		version:        1,
		sections:       append([]Section(nil), p.Sections...),
	}

	created := NewCreatedEvent(e.id, e.name, e.organizerID, e.date, now)
	return e, []DomainEvent{created}, nil
}

// EditParams carries the replacement details for a draft event.
// Sections are replaced wholesale.
type EditParams struct {
	Name        string
	Description string
	Date        EventDate
	Duration    EventDuration
	Category    string
	Sections    []Section
}

// Edit replaces the details of a draft event. Only drafts can be edited.
func (e *Event) Edit(p EditParams) ([]DomainEvent, error) {
	const op = "event.Edit"

	if e.status != StatusDraft {
		return nil, errors.InvalidStatef(op, "only draft events can be edited, status is %s", e.status)
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, errors.InvalidArgument(op, "event name is required")
	}
	if p.Date.IsZero() {
		return nil, errors.InvalidArgument(op, "event date is required")
	}
	if p.Duration.IsZero() {
		return nil, errors.InvalidArgument(op, "event duration is required")
	}
	if strings.TrimSpace(p.Category) == "" {
		return nil, errors.InvalidArgument(op, "event category is required")
	}
	if err := validateSections(op, p.Sections); err != nil {
		return nil, err
	}

	e.name = strings.TrimSpace(p.Name)
	e.description = strings.TrimSpace(p.Description)
	e.category = strings.TrimSpace(p.Category)
	e.date = p.Date
	e.duration = p.Duration
	e.sections = append([]Section(nil), p.Sections...)
	e.version++

	edited := NewEditedEvent(e.id, e.name, time.Now())
	return []DomainEvent{edited}, nil
}

// AddSection appends a section to a draft event. Duplicate identities or
// names (case-insensitive) are rejected. No domain event is emitted;
// section additions are part of composing the draft.
func (e *Event) AddSection(s Section) error {
	const op = "event.AddSection"

	if e.status != StatusDraft {
		return errors.InvalidStatef(op, "sections can only be added to draft events, status is %s", e.status)
	}
	if s.IsZero() {
		return errors.InvalidArgument(op, "section is required")
	}
	for _, existing := range e.sections {
		if existing.ID() == s.ID() {
			return errors.Conflict(op, "a section with this id already exists")
		}
		if strings.EqualFold(existing.Name(), s.Name()) {
			return errors.Conflict(op, "a section with this name already exists")
		}
	}

	e.sections = append(e.sections, s)
	e.version++
	return nil
}

// StartPublicationPayment moves a draft into pending payment. The amount
// must match the configured publication fee after rounding.
func (e *Event) StartPublicationPayment(transactionID string, amount float64) ([]DomainEvent, error) {
	const op = "event.StartPublicationPayment"

	if err := e.guardTransition(op, StatusPendingPayment); err != nil {
		return nil, err
	}
	if strings.TrimSpace(transactionID) == "" {
		return nil, errors.InvalidArgument(op, "payment transaction id is required")
	}
	if amount <= 0 {
		return nil, errors.InvalidArgument(op, "payment amount must be greater than zero")
	}
	if round2(amount) != e.publicationFee {
		return nil, errors.Conflict(op, "payment amount does not match the publication fee").
			WithDetail("expected", e.publicationFee).
			WithDetail("got", round2(amount))
	}

	e.paymentTransactionID = strings.TrimSpace(transactionID)
	e.status = StatusPendingPayment
	e.version++

	started := NewPaymentStartedEvent(e.id, e.paymentTransactionID, round2(amount), time.Now())
	return []DomainEvent{started}, nil
}

// Publish makes the event publicly visible once its payment is confirmed.
// The confirmed transaction must match the one that started the payment.
func (e *Event) Publish(confirmedTransactionID string, now time.Time) ([]DomainEvent, error) {
	const op = "event.Publish"

	if err := e.guardTransition(op, StatusPublished); err != nil {
		return nil, err
	}
	if strings.TrimSpace(confirmedTransactionID) == "" {
		return nil, errors.InvalidArgument(op, "confirmed transaction id is required")
	}
	if strings.TrimSpace(confirmedTransactionID) != e.paymentTransactionID {
		return nil, errors.Conflict(op, "confirmed transaction does not match the pending payment")
	}

	e.status = StatusPublished
	publishedAt := now
	e.publishedAt = &publishedAt
	e.paymentTransactionID = ""
	e.version++

	published := NewPublishedEvent(e.id, e.name, e.organizerID, now)
	return []DomainEvent{published}, nil
}

// Start marks a published event as in progress. The event date must have
// arrived; comparison is date-only.
func (e *Event) Start(now time.Time) ([]DomainEvent, error) {
	const op = "event.Start"

	if err := e.guardTransition(op, StatusInProgress); err != nil {
		return nil, err
	}
	if !e.date.HasArrived(now) {
		return nil, errors.InvalidStatef(op, "event cannot start before its date %s", e.date)
	}

	e.status = StatusInProgress
	e.version++

	started := NewStartedEvent(e.id, now)
	return []DomainEvent{started}, nil
}

// Finish marks an in-progress event as finished.
func (e *Event) Finish(now time.Time) ([]DomainEvent, error) {
	const op = "event.Finish"

	if err := e.guardTransition(op, StatusFinished); err != nil {
		return nil, err
	}

	e.status = StatusFinished
	e.version++

	finished := NewFinishedEvent(e.id, now)
	return []DomainEvent{finished}, nil
}

// Cancel cancels an event that has not started. In-progress events must
// run to completion; cancelling them would strand attendees, so the
// operation is narrower than the raw transition table.
func (e *Event) Cancel(reason string) ([]DomainEvent, error) {
	const op = "event.Cancel"

	if e.status == StatusInProgress || e.status == StatusFinished {
		return nil, errors.InvalidStatef(op, "a %s event cannot be cancelled", e.status)
	}
	if err := e.guardTransition(op, StatusCancelled); err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = defaultCancelReason
	}

	e.status = StatusCancelled
	e.paymentTransactionID = ""
	e.version++

	cancelled := NewCancelledEvent(e.id, reason, time.Now())
	return []DomainEvent{cancelled}, nil
}

// guardTransition rejects operations whose target state is not reachable
// from the current state per the transition table.
func (e *Event) guardTransition(op string, target Status) error {
	if !e.status.CanTransitionTo(target) {
		return errors.InvalidStatef(op, "cannot transition from %s to %s", e.status, target)
	}
	return nil
}

// validateSections checks the section set for a create or edit: at least
// one section, no duplicate identities, no duplicate names.
func validateSections(op string, sections []Section) error {
	if len(sections) == 0 {
		return errors.InvalidArgument(op, "at least one section is required")
	}

	seenIDs := make(map[uuid.UUID]struct{}, len(sections))
	seenNames := make(map[string]struct{}, len(sections))
	for _, s := range sections {
		if s.IsZero() {
			return errors.InvalidArgument(op, "section is required")
		}
		if _, ok := seenIDs[s.ID()]; ok {
			return errors.Conflict(op, "duplicate section id")
		}
		name := strings.ToLower(s.Name())
		if _, ok := seenNames[name]; ok {
			return errors.Conflict(op, "duplicate section name")
		}
		seenIDs[s.ID()] = struct{}{}
		seenNames[name] = struct{}{}
	}
	return nil
}

// ID returns the event identity.
func (e *Event) ID() uuid.UUID { return e.id }

// Name returns the event name.
func (e *Event) Name() string { return e.name }

// Description returns the event description.
func (e *Event) Description() string { return e.description }

// Category returns the event category.
func (e *Event) Category() string { return e.category }

// Date returns the event date.
func (e *Event) Date() EventDate { return e.date }

// Duration returns the event duration.
func (e *Event) Duration() EventDuration { return e.duration }

// Status returns the current lifecycle status.
func (e *Event) Status() Status { return e.status }

// OrganizerID returns the organizer identity.
func (e *Event) OrganizerID() uuid.UUID { return e.organizerID }

// VenueID returns the venue identity.
func (e *Event) VenueID() uuid.UUID { return e.venueID }

// PublicationFee returns the fee required to publish the event.
func (e *Event) PublicationFee() float64 { return e.publicationFee }

// PaymentTransactionID returns the pending payment transaction, if any.
func (e *Event) PaymentTransactionID() string { return e.paymentTransactionID }

// CreatedAt returns when the event was created.
func (e *Event) CreatedAt() time.Time { return e.createdAt }

// PublishedAt returns when the event was published, or nil.
func (e *Event) PublishedAt() *time.Time {
	if e.publishedAt == nil {
		return nil
	}
	t := *e.publishedAt
	return &t
}

// Version returns the optimistic-concurrency version. It starts at 1 and
// increments on every successful mutation.
func (e *Event) Version() int { return e.version }

// Sections returns a copy of the event's sections.
func (e *Event) Sections() []Section {
	return append([]Section(nil), e.sections...)
}

// RehydrateParams carries a stored snapshot of an event. Dates are not
// re-validated against the calendar; stored events may be in the past.
type RehydrateParams struct {
	ID                   uuid.UUID
	Name                 string
	Description          string
	Category             string
	Date                 time.Time
	DurationHours        int
	DurationMinutes      int
	Status               Status
	OrganizerID          uuid.UUID
	VenueID              uuid.UUID
	PublicationFee       float64
	PaymentTransactionID string
	CreatedAt            time.Time
	PublishedAt          *time.Time
	Version              int
	Sections             []Section
}

// Rehydrate reconstructs an event from storage. It validates structural
// integrity only and emits no domain events.
func Rehydrate(p RehydrateParams) (*Event, error) {
	const op = "event.Rehydrate"

	if p.ID == uuid.Nil {
		return nil, errors.InvalidArgument(op, "event id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, errors.InvalidArgument(op, "event name is required")
	}
	if !p.Status.IsValid() {
		return nil, errors.InvalidArgumentf(op, "invalid status %q", string(p.Status))
	}
	if p.Version < 1 {
		return nil, errors.InvalidArgument(op, "version must be at least 1")
	}
	if len(p.Sections) == 0 {
		return nil, errors.InvalidArgument(op, "at least one section is required")
	}
	duration, err := NewEventDuration(p.DurationHours, p.DurationMinutes)
	if err != nil {
		return nil, err
	}

	var publishedAt *time.Time
	if p.PublishedAt != nil {
		t := *p.PublishedAt
		publishedAt = &t
	}

	return &Event{
		id:                   p.ID,
		name:                 p.Name,
		description:          p.Description,
		category:             p.Category,
		date:                 EventDate{value: dateOnly(p.Date)},
		duration:             duration,
		status:               p.Status,
		organizerID:          p.OrganizerID,
		venueID:              p.VenueID,
		publicationFee:       round2(p.PublicationFee),
		paymentTransactionID: p.PaymentTransactionID,
		createdAt:            p.CreatedAt,
		publishedAt:          publishedAt,
		version:              p.Version,
		sections:             append([]Section(nil), p.Sections...),
	}, nil
}
