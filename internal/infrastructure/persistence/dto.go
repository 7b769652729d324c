package persistence

import (
	"time"

	"github.com/google/uuid"

	"github.com/eventhive/events-service/internal/domain/event"
	"github.com/eventhive/events-service/internal/errors"
)

// eventDTO is a data transfer object for serializing events.
type eventDTO struct {
	ID                   string       `json:"id"`
	Name                 string       `json:"name"`
	Description          string       `json:"description,omitempty"`
	Category             string       `json:"category"`
	Date                 string       `json:"date"`
	DurationHours        int          `json:"duration_hours"`
	DurationMinutes      int          `json:"duration_minutes"`
	Status               string       `json:"status"`
	OrganizerID          string       `json:"organizer_id"`
	VenueID              string       `json:"venue_id"`
	PublicationFee       float64      `json:"publication_fee"`
	PaymentTransactionID string       `json:"payment_transaction_id,omitempty"`
	CreatedAt            string       `json:"created_at"`
	PublishedAt          *string      `json:"published_at,omitempty"`
	Version              int          `json:"version"`
	Sections             []sectionDTO `json:"sections"`
}

type sectionDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Capacity int     `json:"capacity"`
	Price    float64 `json:"price"`
}

const dateLayout = "2006-01-02"

// toDTO converts an aggregate into its storage representation.
func toDTO(e *event.Event) eventDTO {
	sections := make([]sectionDTO, 0, len(e.Sections()))
	for _, s := range e.Sections() {
		sections = append(sections, sectionDTO{
			ID:       s.ID().String(),
			Name:     s.Name(),
			Capacity: s.Capacity(),
			Price:    s.Price().Amount(),
		})
	}

	var publishedAt *string
	if t := e.PublishedAt(); t != nil {
		formatted := t.UTC().Format(time.RFC3339Nano)
		publishedAt = &formatted
	}

	return eventDTO{
		ID:                   e.ID().String(),
		Name:                 e.Name(),
		Description:          e.Description(),
		Category:             e.Category(),
		Date:                 e.Date().String(),
		DurationHours:        e.Duration().Hours(),
		DurationMinutes:      e.Duration().Minutes(),
		Status:               e.Status().String(),
		OrganizerID:          e.OrganizerID().String(),
		VenueID:              e.VenueID().String(),
		PublicationFee:       e.PublicationFee(),
		PaymentTransactionID: e.PaymentTransactionID(),
		CreatedAt:            e.CreatedAt().UTC().Format(time.RFC3339Nano),
		PublishedAt:          publishedAt,
		Version:              e.Version(),
		Sections:             sections,
	}
}

// fromDTO rebuilds the aggregate from its storage representation.
func fromDTO(dto eventDTO) (*event.Event, error) {
	const op = "persistence.fromDTO"

	id, err := uuid.Parse(dto.ID)
	if err != nil {
		return nil, errors.IOWrap(err, op, "invalid event id")
	}
	organizerID, err := uuid.Parse(dto.OrganizerID)
	if err != nil {
		return nil, errors.IOWrap(err, op, "invalid organizer id")
	}
	venueID, err := uuid.Parse(dto.VenueID)
	if err != nil {
		return nil, errors.IOWrap(err, op, "invalid venue id")
	}
	status, err := event.ParseStatus(dto.Status)
	if err != nil {
		return nil, errors.IOWrap(err, op, "invalid status")
	}
	date, err := time.Parse(dateLayout, dto.Date)
	if err != nil {
		return nil, errors.IOWrap(err, op, "invalid date")
	}
	createdAt, err := time.Parse(time.RFC3339Nano, dto.CreatedAt)
	if err != nil {
		return nil, errors.IOWrap(err, op, "invalid created_at")
	}

	var publishedAt *time.Time
	if dto.PublishedAt != nil {
		t, err := time.Parse(time.RFC3339Nano, *dto.PublishedAt)
		if err != nil {
			return nil, errors.IOWrap(err, op, "invalid published_at")
		}
		publishedAt = &t
	}

	sections := make([]event.Section, 0, len(dto.Sections))
	for _, s := range dto.Sections {
		sectionID, err := uuid.Parse(s.ID)
		if err != nil {
			return nil, errors.IOWrap(err, op, "invalid section id")
		}
		price, err := event.NewTicketPrice(s.Price)
		if err != nil {
			return nil, err
		}
		section, err := event.NewSectionWithID(sectionID, s.Name, s.Capacity, price)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}

	return event.Rehydrate(event.RehydrateParams{
		ID:                   id,
		Name:                 dto.Name,
		Description:          dto.Description,
		Category:             dto.Category,
		Date:                 date,
		DurationHours:        dto.DurationHours,
		DurationMinutes:      dto.DurationMinutes,
		Status:               status,
		OrganizerID:          organizerID,
		VenueID:              venueID,
		PublicationFee:       dto.PublicationFee,
		PaymentTransactionID: dto.PaymentTransactionID,
		CreatedAt:            createdAt,
		PublishedAt:          publishedAt,
		Version:              dto.Version,
		Sections:             sections,
	})
}
