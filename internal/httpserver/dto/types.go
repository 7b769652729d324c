// Package dto provides data transfer objects for the events API.
package dto

// ErrorResponse is an API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// SectionRequest describes a section in a create or edit request.
type SectionRequest struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Capacity int     `json:"capacity"`
	Price    float64 `json:"price"`
}

// CreateEventRequest is the payload for creating an event.
type CreateEventRequest struct {
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Category        string           `json:"category"`
	Date            string           `json:"date"` // YYYY-MM-DD
	DurationHours   int              `json:"duration_hours"`
	DurationMinutes int              `json:"duration_minutes"`
	OrganizerID     string           `json:"organizer_id"`
	VenueID         string           `json:"venue_id"`
	PublicationFee  float64          `json:"publication_fee"`
	Sections        []SectionRequest `json:"sections"`
}

// EditEventRequest is the payload for editing a draft event.
type EditEventRequest struct {
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Category        string           `json:"category"`
	Date            string           `json:"date"` // YYYY-MM-DD
	DurationHours   int              `json:"duration_hours"`
	DurationMinutes int              `json:"duration_minutes"`
	Sections        []SectionRequest `json:"sections"`
}

// AddSectionRequest is the payload for adding a section to a draft.
type AddSectionRequest struct {
	Section SectionRequest `json:"section"`
}

// StartPaymentRequest is the payload for starting publication payment.
type StartPaymentRequest struct {
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
}

// PublishEventRequest is the payload for publishing a paid event.
type PublishEventRequest struct {
	ConfirmedTransactionID string `json:"confirmed_transaction_id"`
}

// CancelEventRequest is the payload for cancelling an event.
type CancelEventRequest struct {
	Reason string `json:"reason,omitempty"`
}

// SectionDTO is the API representation of a section.
type SectionDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Capacity int     `json:"capacity"`
	Price    float64 `json:"price"`
}

// EventDTO is the API representation of an event.
type EventDTO struct {
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
	Sections             []SectionDTO `json:"sections"`
}

// CreateEventResponse returns the id of a newly created event.
type CreateEventResponse struct {
	ID string `json:"id"`
}

// EventListResponse wraps a list of events.
type EventListResponse struct {
	Data  []EventDTO `json:"data"`
	Total int        `json:"total"`
}
