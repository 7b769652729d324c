package persistence

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/eventhive/events-service/internal/domain/event"
	"github.com/eventhive/events-service/internal/errors"
)

// InMemoryEventRepository implements event.Repository with map storage.
// Snapshots round-trip through the storage DTO so the copy semantics
// match the durable repositories. Used in tests and db-disabled runs.
type InMemoryEventRepository struct {
	mu     sync.RWMutex
	events map[uuid.UUID]eventDTO
}

// NewInMemoryEventRepository creates an empty in-memory repository.
func NewInMemoryEventRepository() *InMemoryEventRepository {
	return &InMemoryEventRepository{
		events: make(map[uuid.UUID]eventDTO),
	}
}

// Add persists a newly created event.
func (r *InMemoryEventRepository) Add(ctx context.Context, e *event.Event) error {
	const op = "persistence.InMemoryEventRepository.Add"

	if err := checkContext(ctx); err != nil {
		return errors.Wrap(err, errors.KindCanceled, op, "context done")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.events[e.ID()]; exists {
		return errors.Conflict(op, "event already exists")
	}
	r.events[e.ID()] = toDTO(e)
	return nil
}

// GetByID loads an event.
func (r *InMemoryEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	const op = "persistence.InMemoryEventRepository.GetByID"

	if err := checkContext(ctx); err != nil {
		return nil, errors.Wrap(err, errors.KindCanceled, op, "context done")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	dto, exists := r.events[id]
	if !exists {
		return nil, errors.NotFound(op, "event not found")
	}
	return fromDTO(dto)
}

// Update persists changes to an existing event, enforcing the same
// version check as the durable repositories.
func (r *InMemoryEventRepository) Update(ctx context.Context, e *event.Event) error {
	const op = "persistence.InMemoryEventRepository.Update"

	if err := checkContext(ctx); err != nil {
		return errors.Wrap(err, errors.KindCanceled, op, "context done")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.events[e.ID()]
	if !exists {
		return errors.NotFound(op, "event not found")
	}
	if stored.Version != e.Version()-1 {
		return errors.Conflict(op, "event was modified concurrently")
	}
	r.events[e.ID()] = toDTO(e)
	return nil
}

// ListPublished returns all published events.
func (r *InMemoryEventRepository) ListPublished(ctx context.Context) ([]*event.Event, error) {
	return r.list(ctx, func(dto eventDTO) bool {
		return dto.Status == event.StatusPublished.String()
	})
}

// ListByOrganizer returns all events owned by an organizer.
func (r *InMemoryEventRepository) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*event.Event, error) {
	want := organizerID.String()
	return r.list(ctx, func(dto eventDTO) bool {
		return dto.OrganizerID == want
	})
}

// ListByVenue returns all events held at a venue.
func (r *InMemoryEventRepository) ListByVenue(ctx context.Context, venueID uuid.UUID) ([]*event.Event, error) {
	want := venueID.String()
	return r.list(ctx, func(dto eventDTO) bool {
		return dto.VenueID == want
	})
}

func (r *InMemoryEventRepository) list(ctx context.Context, match func(eventDTO) bool) ([]*event.Event, error) {
	const op = "persistence.InMemoryEventRepository.list"

	if err := checkContext(ctx); err != nil {
		return nil, errors.Wrap(err, errors.KindCanceled, op, "context done")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*event.Event
	for _, dto := range r.events {
		if !match(dto) {
			continue
		}
		e, err := fromDTO(dto)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, nil
}
