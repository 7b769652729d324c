package event

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence port for the event aggregate.
// Update must fail with a conflict error when the stored version does
// not immediately precede the aggregate's version.
type Repository interface {
	// Add persists a newly created event.
	Add(ctx context.Context, e *Event) error
	// GetByID loads an event, returning a not-found error when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	// Update persists changes to an existing event.
	Update(ctx context.Context, e *Event) error
	// ListPublished returns all published events.
	ListPublished(ctx context.Context) ([]*Event, error)
	// ListByOrganizer returns all events owned by an organizer.
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*Event, error)
	// ListByVenue returns all events held at a venue.
	ListByVenue(ctx context.Context, venueID uuid.UUID) ([]*Event, error)
}

// Publisher is the outbound port for domain events. Implementations must
// preserve the order events are passed in.
type Publisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}
