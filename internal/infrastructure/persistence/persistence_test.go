package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/eventhive/events-service/internal/domain/event"
)

// newTestEvent builds a draft aggregate for store tests.
func newTestEvent(t *testing.T) *event.Event {
	t.Helper()

	price, err := event.NewTicketPrice(25.50)
	if err != nil {
		t.Fatalf("NewTicketPrice() error = %v", err)
	}
	section, err := event.NewSection("General Admission", 100, price)
	if err != nil {
		t.Fatalf("NewSection() error = %v", err)
	}
	date, err := event.NewEventDate(time.Now().AddDate(0, 1, 0))
	if err != nil {
		t.Fatalf("NewEventDate() error = %v", err)
	}
	duration, err := event.NewEventDuration(2, 30)
	if err != nil {
		t.Fatalf("NewEventDuration() error = %v", err)
	}

	e, _, err := event.Create(event.CreateParams{
		Name:           "Summer Concert",
		Description:    "Open air concert",
		Category:       "music",
		Date:           date,
		Duration:       duration,
		OrganizerID:    uuid.New(),
		VenueID:        uuid.New(),
		PublicationFee: 49.99,
		Sections:       []event.Section{section},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return e
}

// advanceToPendingPayment moves a draft into pending payment.
func advanceToPendingPayment(t *testing.T, e *event.Event) {
	t.Helper()
	if _, err := e.StartPublicationPayment("tx-1", 49.99); err != nil {
		t.Fatalf("StartPublicationPayment() error = %v", err)
	}
}
