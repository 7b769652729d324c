package event

import (
	"strings"

	"github.com/google/uuid"

	"github.com/eventhive/events-service/internal/errors"
)

// Section is a seating area within an event with its own capacity and
// ticket price. Sections are child entities of the Event aggregate and
// compare by identity.
type Section struct {
	id       uuid.UUID
	name     string
	capacity int
	price    TicketPrice
}

// NewSection creates a Section with a generated identity.
func NewSection(name string, capacity int, price TicketPrice) (Section, error) {
	return NewSectionWithID(uuid.New(), name, capacity, price)
}

// NewSectionWithID creates a Section with a caller-supplied identity.
// Used when rehydrating from storage or when the client assigns IDs.
func NewSectionWithID(id uuid.UUID, name string, capacity int, price TicketPrice) (Section, error) {
	const op = "event.NewSection"

	if id == uuid.Nil {
		return Section{}, errors.InvalidArgument(op, "section id is required")
	}
	if strings.TrimSpace(name) == "" {
		return Section{}, errors.InvalidArgument(op, "section name is required")
	}
	if capacity <= 0 {
		return Section{}, errors.InvalidArgument(op, "section capacity must be greater than zero")
	}
	return Section{
		id:       id,
		name:     strings.TrimSpace(name),
		capacity: capacity,
		price:    price,
	}, nil
}

// ID returns the section identity.
func (s Section) ID() uuid.UUID {
	return s.id
}

// Name returns the section name.
func (s Section) Name() string {
	return s.name
}

// Capacity returns the seat capacity.
func (s Section) Capacity() int {
	return s.capacity
}

// Price returns the ticket price.
func (s Section) Price() TicketPrice {
	return s.price
}

// IsZero returns true if the section has not been initialized.
func (s Section) IsZero() bool {
	return s.id == uuid.Nil
}

// Equal reports whether two sections share the same identity.
func (s Section) Equal(other Section) bool {
	return s.id == other.id
}
