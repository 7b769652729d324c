package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/eventhive/events-service/internal/domain/event"
	"github.com/eventhive/events-service/internal/errors"
)

// GetEvent loads a single event by identity.
func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	if id == uuid.Nil {
		return nil, errors.InvalidArgument("app.GetEvent", "event id is required")
	}
	return s.repo.GetByID(ctx, id)
}

// ListPublishedEvents returns all published events.
func (s *Service) ListPublishedEvents(ctx context.Context) ([]*event.Event, error) {
	return s.repo.ListPublished(ctx)
}

// ListEventsByOrganizer returns all events owned by an organizer.
func (s *Service) ListEventsByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*event.Event, error) {
	if organizerID == uuid.Nil {
		return nil, errors.InvalidArgument("app.ListEventsByOrganizer", "organizer id is required")
	}
	return s.repo.ListByOrganizer(ctx, organizerID)
}

// ListEventsByVenue returns all events held at a venue.
func (s *Service) ListEventsByVenue(ctx context.Context, venueID uuid.UUID) ([]*event.Event, error) {
	if venueID == uuid.Nil {
		return nil, errors.InvalidArgument("app.ListEventsByVenue", "venue id is required")
	}
	return s.repo.ListByVenue(ctx, venueID)
}
