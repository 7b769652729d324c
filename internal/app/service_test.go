package app

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhive/events-service/internal/domain/event"
	"github.com/eventhive/events-service/internal/errors"
	"github.com/eventhive/events-service/internal/infrastructure/persistence"
)

const testFee = 49.99

type fixture struct {
	service   *Service
	repo      *persistence.InMemoryEventRepository
	publisher *persistence.InMemoryEventPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := persistence.NewInMemoryEventRepository()
	publisher := persistence.NewInMemoryEventPublisher()
	return &fixture{
		service:   NewService(repo, publisher, nil),
		repo:      repo,
		publisher: publisher,
	}
}

func validCreateCommand() CreateEventCommand {
	return CreateEventCommand{
		Name:            "Summer Concert",
		Description:     "Open air concert",
		Category:        "music",
		Date:            time.Now().AddDate(0, 1, 0),
		DurationHours:   2,
		DurationMinutes: 30,
		OrganizerID:     uuid.New(),
		VenueID:         uuid.New(),
		PublicationFee:  testFee,
		Sections: []SectionInput{
			{Name: "General Admission", Capacity: 100, Price: 25.50},
		},
	}
}

// createDraft creates an event through the service and returns its id.
func createDraft(t *testing.T, f *fixture) uuid.UUID {
	t.Helper()
	id, err := f.service.CreateEvent(context.Background(), validCreateCommand())
	require.NoError(t, err)
	return id
}

// createDraftToday creates a draft whose date is today so it can start.
func createDraftToday(t *testing.T, f *fixture) uuid.UUID {
	t.Helper()
	cmd := validCreateCommand()
	cmd.Date = time.Now()
	id, err := f.service.CreateEvent(context.Background(), cmd)
	require.NoError(t, err)
	return id
}

func advanceToPublished(t *testing.T, f *fixture, id uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.service.StartPayment(ctx, StartPaymentCommand{
		EventID: id, TransactionID: "tx-1", Amount: testFee,
	}))
	require.NoError(t, f.service.PublishEvent(ctx, PublishEventCommand{
		EventID: id, ConfirmedTransactionID: "tx-1",
	}))
}

func TestCreateEvent(t *testing.T) {
	f := newFixture(t)

	id, err := f.service.CreateEvent(context.Background(), validCreateCommand())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	e, err := f.repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, event.StatusDraft, e.Status())
	assert.Equal(t, 1, e.Version())

	published := f.publisher.Events()
	require.Len(t, published, 1)
	assert.Equal(t, "event.created", published[0].EventName())
	assert.Equal(t, id, published[0].AggregateID())
}

func TestCreateEvent_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(*CreateEventCommand)
	}{
		{"blank name", func(c *CreateEventCommand) { c.Name = "  " }},
		{"missing organizer", func(c *CreateEventCommand) { c.OrganizerID = uuid.Nil }},
		{"missing venue", func(c *CreateEventCommand) { c.VenueID = uuid.Nil }},
		{"no sections", func(c *CreateEventCommand) { c.Sections = nil }},
		{"past date", func(c *CreateEventCommand) { c.Date = time.Now().AddDate(0, 0, -1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validCreateCommand()
			tt.mutate(&cmd)

			_, err := f.service.CreateEvent(context.Background(), cmd)
			assert.Equal(t, errors.KindInvalidArgument, errors.GetKind(err))
		})
	}

	assert.Empty(t, f.publisher.Events(), "failed creations must not publish events")
}

func TestFullLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := createDraftToday(t, f)
	advanceToPublished(t, f, id)
	require.NoError(t, f.service.StartEvent(ctx, StartEventCommand{EventID: id}))
	require.NoError(t, f.service.FinishEvent(ctx, FinishEventCommand{EventID: id}))

	e, err := f.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, event.StatusFinished, e.Status())
	assert.Equal(t, 5, e.Version())

	var names []string
	for _, ev := range f.publisher.Events() {
		names = append(names, ev.EventName())
	}
	assert.Equal(t, []string{
		"event.created",
		"event.payment_started",
		"event.published",
		"event.started",
		"event.finished",
	}, names)
}

func TestEditEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := createDraft(t, f)

	err := f.service.EditEvent(ctx, EditEventCommand{
		EventID:         id,
		Name:            "Winter Concert",
		Description:     "Indoor concert",
		Category:        "music",
		Date:            time.Now().AddDate(0, 2, 0),
		DurationHours:   3,
		DurationMinutes: 0,
		Sections: []SectionInput{
			{Name: "Balcony", Capacity: 50, Price: 40},
		},
	})
	require.NoError(t, err)

	e, err := f.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Winter Concert", e.Name())
	assert.Equal(t, 2, e.Version())
	require.Len(t, e.Sections(), 1)
	assert.Equal(t, "Balcony", e.Sections()[0].Name())

	edited := f.publisher.EventsByName("event.edited")
	require.Len(t, edited, 1)
}

func TestEditEvent_MissingEvent(t *testing.T) {
	f := newFixture(t)

	cmd := EditEventCommand{
		EventID:       uuid.New(),
		Name:          "Name",
		Category:      "music",
		Date:          time.Now().AddDate(0, 1, 0),
		DurationHours: 1,
		Sections:      []SectionInput{{Name: "GA", Capacity: 10, Price: 5}},
	}
	err := f.service.EditEvent(context.Background(), cmd)
	assert.Equal(t, errors.KindNotFound, errors.GetKind(err))
}

func TestAddSection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := createDraft(t, f)

	err := f.service.AddSection(ctx, AddSectionCommand{
		EventID: id,
		Section: SectionInput{Name: "VIP", Capacity: 20, Price: 99.99},
	})
	require.NoError(t, err)

	e, err := f.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, e.Sections(), 2)
	assert.Equal(t, 2, e.Version())
}

func TestAddSection_DuplicateName(t *testing.T) {
	f := newFixture(t)
	id := createDraft(t, f)

	err := f.service.AddSection(context.Background(), AddSectionCommand{
		EventID: id,
		Section: SectionInput{Name: "general admission", Capacity: 5, Price: 10},
	})
	assert.Equal(t, errors.KindConflict, errors.GetKind(err))
}

func TestStartPayment_WrongAmount(t *testing.T) {
	f := newFixture(t)
	id := createDraft(t, f)

	err := f.service.StartPayment(context.Background(), StartPaymentCommand{
		EventID: id, TransactionID: "tx-1", Amount: testFee + 1,
	})
	assert.Equal(t, errors.KindConflict, errors.GetKind(err))

	// Aggregate stays untouched on failure
	e, getErr := f.repo.GetByID(context.Background(), id)
	require.NoError(t, getErr)
	assert.Equal(t, event.StatusDraft, e.Status())
	assert.Equal(t, 1, e.Version())
}

func TestPublishEvent_WrongTransaction(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := createDraft(t, f)

	require.NoError(t, f.service.StartPayment(ctx, StartPaymentCommand{
		EventID: id, TransactionID: "tx-1", Amount: testFee,
	}))

	err := f.service.PublishEvent(ctx, PublishEventCommand{
		EventID: id, ConfirmedTransactionID: "tx-other",
	})
	assert.Equal(t, errors.KindConflict, errors.GetKind(err))
}

func TestStartEvent_BeforeDate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := createDraft(t, f) // date one month out
	advanceToPublished(t, f, id)

	err := f.service.StartEvent(ctx, StartEventCommand{EventID: id})
	assert.Equal(t, errors.KindInvalidState, errors.GetKind(err))
}

func TestCancelEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := createDraft(t, f)

	require.NoError(t, f.service.CancelEvent(ctx, CancelEventCommand{
		EventID: id, Reason: "venue flooded",
	}))

	e, err := f.repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, event.StatusCancelled, e.Status())

	cancelled := f.publisher.EventsByName("event.cancelled")
	require.Len(t, cancelled, 1)
}

func TestCancelEvent_InProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := createDraftToday(t, f)
	advanceToPublished(t, f, id)
	require.NoError(t, f.service.StartEvent(ctx, StartEventCommand{EventID: id}))

	err := f.service.CancelEvent(ctx, CancelEventCommand{EventID: id, Reason: "too late"})
	assert.Equal(t, errors.KindInvalidState, errors.GetKind(err))
}

func TestCommandValidation_NilID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.Equal(t, errors.KindInvalidArgument,
		errors.GetKind(f.service.StartPayment(ctx, StartPaymentCommand{TransactionID: "tx", Amount: 1})))
	assert.Equal(t, errors.KindInvalidArgument,
		errors.GetKind(f.service.PublishEvent(ctx, PublishEventCommand{ConfirmedTransactionID: "tx"})))
	assert.Equal(t, errors.KindInvalidArgument,
		errors.GetKind(f.service.StartEvent(ctx, StartEventCommand{})))
	assert.Equal(t, errors.KindInvalidArgument,
		errors.GetKind(f.service.FinishEvent(ctx, FinishEventCommand{})))
	assert.Equal(t, errors.KindInvalidArgument,
		errors.GetKind(f.service.CancelEvent(ctx, CancelEventCommand{})))
}

func TestPublishFailureDoesNotFailUseCase(t *testing.T) {
	repo := persistence.NewInMemoryEventRepository()
	service := NewService(repo, failingPublisher{}, nil)

	id, err := service.CreateEvent(context.Background(), validCreateCommand())
	require.NoError(t, err)

	// The aggregate is persisted even though publishing failed
	_, err = repo.GetByID(context.Background(), id)
	assert.NoError(t, err)
}

type failingPublisher struct{}

func (failingPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	return errors.IO("test", "broker down")
}

func TestGetEvent(t *testing.T) {
	f := newFixture(t)
	id := createDraft(t, f)

	e, err := f.service.GetEvent(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, e.ID())

	_, err = f.service.GetEvent(context.Background(), uuid.Nil)
	assert.Equal(t, errors.KindInvalidArgument, errors.GetKind(err))
}

func TestListQueries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	draftID := createDraft(t, f)
	publishedID := createDraft(t, f)
	advanceToPublished(t, f, publishedID)

	published, err := f.service.ListPublishedEvents(ctx)
	require.NoError(t, err)
	require.Len(t, published, 1)
	assert.Equal(t, publishedID, published[0].ID())

	draft, err := f.service.GetEvent(ctx, draftID)
	require.NoError(t, err)

	byOrganizer, err := f.service.ListEventsByOrganizer(ctx, draft.OrganizerID())
	require.NoError(t, err)
	require.Len(t, byOrganizer, 1)
	assert.Equal(t, draftID, byOrganizer[0].ID())

	byVenue, err := f.service.ListEventsByVenue(ctx, draft.VenueID())
	require.NoError(t, err)
	require.Len(t, byVenue, 1)

	_, err = f.service.ListEventsByOrganizer(ctx, uuid.Nil)
	assert.Equal(t, errors.KindInvalidArgument, errors.GetKind(err))
}
