package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/eventhive/events-service/internal/domain/event"
)

// Service orchestrates event lifecycle use cases over the repository and
// publisher ports. Every mutating use case follows the same shape:
// validate input, load the aggregate, invoke exactly one domain
// operation, persist, then publish the events the operation returned.
type Service struct {
	repo      event.Repository
	publisher event.Publisher
	logger    *log.Logger
	now       func() time.Time
}

// NewService creates an application service.
func NewService(repo event.Repository, publisher event.Publisher, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// CreateEvent creates a new draft event and returns its identity.
func (s *Service) CreateEvent(ctx context.Context, cmd CreateEventCommand) (uuid.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return uuid.Nil, err
	}

	date, err := event.NewEventDate(cmd.Date)
	if err != nil {
		return uuid.Nil, err
	}
	duration, err := event.NewEventDuration(cmd.DurationHours, cmd.DurationMinutes)
	if err != nil {
		return uuid.Nil, err
	}
	sections, err := buildSections(cmd.Sections)
	if err != nil {
		return uuid.Nil, err
	}

	e, events, err := event.Create(event.CreateParams{
		Name:           cmd.Name,
		Description:    cmd.Description,
		Date:           date,
		Duration:       duration,
		OrganizerID:    cmd.OrganizerID,
		VenueID:        cmd.VenueID,
		Category:       cmd.Category,
		PublicationFee: cmd.PublicationFee,
		Sections:       sections,
	})
	if err != nil {
		return uuid.Nil, err
	}

	if err := s.repo.Add(ctx, e); err != nil {
		return uuid.Nil, err
	}

	s.logger.Info("event created", "event_id", e.ID(), "organizer_id", e.OrganizerID())
	s.dispatch(ctx, events)
	return e.ID(), nil
}

// EditEvent replaces the details of a draft event.
func (s *Service) EditEvent(ctx context.Context, cmd EditEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	date, err := event.NewEventDate(cmd.Date)
	if err != nil {
		return err
	}
	duration, err := event.NewEventDuration(cmd.DurationHours, cmd.DurationMinutes)
	if err != nil {
		return err
	}
	sections, err := buildSections(cmd.Sections)
	if err != nil {
		return err
	}

	return s.mutate(ctx, cmd.EventID, "event edited", func(e *event.Event) ([]event.DomainEvent, error) {
		return e.Edit(event.EditParams{
			Name:        cmd.Name,
			Description: cmd.Description,
			Date:        date,
			Duration:    duration,
			Category:    cmd.Category,
			Sections:    sections,
		})
	})
}

// AddSection appends a section to a draft event.
func (s *Service) AddSection(ctx context.Context, cmd AddSectionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	section, err := buildSection(cmd.Section)
	if err != nil {
		return err
	}

	return s.mutate(ctx, cmd.EventID, "section added", func(e *event.Event) ([]event.DomainEvent, error) {
		return nil, e.AddSection(section)
	})
}

// StartPayment starts the publication payment for a draft event.
func (s *Service) StartPayment(ctx context.Context, cmd StartPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return s.mutate(ctx, cmd.EventID, "publication payment started", func(e *event.Event) ([]event.DomainEvent, error) {
		return e.StartPublicationPayment(cmd.TransactionID, cmd.Amount)
	})
}

// PublishEvent publishes an event whose payment was confirmed.
func (s *Service) PublishEvent(ctx context.Context, cmd PublishEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return s.mutate(ctx, cmd.EventID, "event published", func(e *event.Event) ([]event.DomainEvent, error) {
		return e.Publish(cmd.ConfirmedTransactionID, s.now())
	})
}

// StartEvent marks a published event as in progress.
func (s *Service) StartEvent(ctx context.Context, cmd StartEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return s.mutate(ctx, cmd.EventID, "event started", func(e *event.Event) ([]event.DomainEvent, error) {
		return e.Start(s.now())
	})
}

// FinishEvent marks an in-progress event as finished.
func (s *Service) FinishEvent(ctx context.Context, cmd FinishEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return s.mutate(ctx, cmd.EventID, "event finished", func(e *event.Event) ([]event.DomainEvent, error) {
		return e.Finish(s.now())
	})
}

// CancelEvent cancels an event that has not started.
func (s *Service) CancelEvent(ctx context.Context, cmd CancelEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return s.mutate(ctx, cmd.EventID, "event cancelled", func(e *event.Event) ([]event.DomainEvent, error) {
		return e.Cancel(cmd.Reason)
	})
}

// mutate runs the load/invoke/persist/publish cycle shared by every
// mutating use case except creation.
func (s *Service) mutate(
	ctx context.Context,
	id uuid.UUID,
	logMsg string,
	op func(*event.Event) ([]event.DomainEvent, error),
) error {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	events, err := op(e)
	if err != nil {
		return err
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return err
	}

	s.logger.Info(logMsg, "event_id", e.ID(), "status", e.Status(), "version", e.Version())
	s.dispatch(ctx, events)
	return nil
}

// dispatch publishes events in order. Publishing is best-effort once the
// aggregate is persisted; failures are logged, not returned.
func (s *Service) dispatch(ctx context.Context, events []event.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish domain events",
			"count", len(events), "error", err)
	}
}

func buildSections(inputs []SectionInput) ([]event.Section, error) {
	sections := make([]event.Section, 0, len(inputs))
	for _, in := range inputs {
		s, err := buildSection(in)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, nil
}

func buildSection(in SectionInput) (event.Section, error) {
	price, err := event.NewTicketPrice(in.Price)
	if err != nil {
		return event.Section{}, err
	}
	if in.ID == uuid.Nil {
		return event.NewSection(in.Name, in.Capacity, price)
	}
	return event.NewSectionWithID(in.ID, in.Name, in.Capacity, price)
}
