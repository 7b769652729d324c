// Package app provides application use cases orchestrating the event
// lifecycle: validate input, load the aggregate, invoke one operation,
// persist, then publish the emitted events.
package app

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eventhive/events-service/internal/errors"
)

// SectionInput describes a section in a create or edit command.
// ID is optional; a zero ID means the service generates one.
type SectionInput struct {
	ID       uuid.UUID
	Name     string
	Capacity int
	Price    float64
}

// CreateEventCommand carries the input for creating an event.
type CreateEventCommand struct {
	Name            string
	Description     string
	Date            time.Time
	DurationHours   int
	DurationMinutes int
	OrganizerID     uuid.UUID
	VenueID         uuid.UUID
	Category        string
	PublicationFee  float64
	Sections        []SectionInput
}

// Validate checks the command's shape before it reaches the domain.
func (c CreateEventCommand) Validate() error {
	const op = "app.CreateEvent"

	if strings.TrimSpace(c.Name) == "" {
		return errors.InvalidArgument(op, "name is required")
	}
	if c.Date.IsZero() {
		return errors.InvalidArgument(op, "date is required")
	}
	if c.OrganizerID == uuid.Nil {
		return errors.InvalidArgument(op, "organizer id is required")
	}
	if c.VenueID == uuid.Nil {
		return errors.InvalidArgument(op, "venue id is required")
	}
	if strings.TrimSpace(c.Category) == "" {
		return errors.InvalidArgument(op, "category is required")
	}
	if len(c.Sections) == 0 {
		return errors.InvalidArgument(op, "at least one section is required")
	}
	return nil
}

// EditEventCommand carries the replacement details for a draft event.
type EditEventCommand struct {
	EventID         uuid.UUID
	Name            string
	Description     string
	Date            time.Time
	DurationHours   int
	DurationMinutes int
	Category        string
	Sections        []SectionInput
}

// Validate checks the command's shape before it reaches the domain.
func (c EditEventCommand) Validate() error {
	const op = "app.EditEvent"

	if c.EventID == uuid.Nil {
		return errors.InvalidArgument(op, "event id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return errors.InvalidArgument(op, "name is required")
	}
	if c.Date.IsZero() {
		return errors.InvalidArgument(op, "date is required")
	}
	if strings.TrimSpace(c.Category) == "" {
		return errors.InvalidArgument(op, "category is required")
	}
	if len(c.Sections) == 0 {
		return errors.InvalidArgument(op, "at least one section is required")
	}
	return nil
}

// AddSectionCommand adds a single section to a draft event.
type AddSectionCommand struct {
	EventID uuid.UUID
	Section SectionInput
}

// Validate checks the command's shape before it reaches the domain.
func (c AddSectionCommand) Validate() error {
	const op = "app.AddSection"

	if c.EventID == uuid.Nil {
		return errors.InvalidArgument(op, "event id is required")
	}
	if strings.TrimSpace(c.Section.Name) == "" {
		return errors.InvalidArgument(op, "section name is required")
	}
	return nil
}

// StartPaymentCommand starts the publication payment for a draft event.
type StartPaymentCommand struct {
	EventID       uuid.UUID
	TransactionID string
	Amount        float64
}

// Validate checks the command's shape before it reaches the domain.
func (c StartPaymentCommand) Validate() error {
	const op = "app.StartPayment"

	if c.EventID == uuid.Nil {
		return errors.InvalidArgument(op, "event id is required")
	}
	if strings.TrimSpace(c.TransactionID) == "" {
		return errors.InvalidArgument(op, "transaction id is required")
	}
	if c.Amount <= 0 {
		return errors.InvalidArgument(op, "amount must be greater than zero")
	}
	return nil
}

// PublishEventCommand publishes an event whose payment was confirmed.
type PublishEventCommand struct {
	EventID                uuid.UUID
	ConfirmedTransactionID string
}

// Validate checks the command's shape before it reaches the domain.
func (c PublishEventCommand) Validate() error {
	const op = "app.PublishEvent"

	if c.EventID == uuid.Nil {
		return errors.InvalidArgument(op, "event id is required")
	}
	if strings.TrimSpace(c.ConfirmedTransactionID) == "" {
		return errors.InvalidArgument(op, "confirmed transaction id is required")
	}
	return nil
}

// StartEventCommand marks a published event as in progress.
type StartEventCommand struct {
	EventID uuid.UUID
}

// Validate checks the command's shape before it reaches the domain.
func (c StartEventCommand) Validate() error {
	if c.EventID == uuid.Nil {
		return errors.InvalidArgument("app.StartEvent", "event id is required")
	}
	return nil
}

// FinishEventCommand marks an in-progress event as finished.
type FinishEventCommand struct {
	EventID uuid.UUID
}

// Validate checks the command's shape before it reaches the domain.
func (c FinishEventCommand) Validate() error {
	if c.EventID == uuid.Nil {
		return errors.InvalidArgument("app.FinishEvent", "event id is required")
	}
	return nil
}

// CancelEventCommand cancels an event that has not started.
type CancelEventCommand struct {
	EventID uuid.UUID
	Reason  string
}

// Validate checks the command's shape before it reaches the domain.
func (c CancelEventCommand) Validate() error {
	if c.EventID == uuid.Nil {
		return errors.InvalidArgument("app.CancelEvent", "event id is required")
	}
	return nil
}
