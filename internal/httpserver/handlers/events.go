package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/eventhive/events-service/internal/app"
	"github.com/eventhive/events-service/internal/domain/event"
	"github.com/eventhive/events-service/internal/errors"
	"github.com/eventhive/events-service/internal/httpserver/dto"
)

const dateLayout = "2006-01-02"

// CreateEvent handles POST /api/v1/events.
func CreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := GetContext()
	if ctx == nil || ctx.Events == nil {
		respondError(w, http.StatusServiceUnavailable, "service not initialized", "")
		return
	}

	var req dto.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	organizerID, err := uuid.Parse(req.OrganizerID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid organizer id", err.Error())
		return
	}
	venueID, err := uuid.Parse(req.VenueID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid venue id", err.Error())
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", err.Error())
		return
	}
	sections, err := parseSections(req.Sections)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sections", err.Error())
		return
	}

	id, err := ctx.Events.CreateEvent(r.Context(), app.CreateEventCommand{
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Date:            date,
		DurationHours:   req.DurationHours,
		DurationMinutes: req.DurationMinutes,
		OrganizerID:     organizerID,
		VenueID:         venueID,
		PublicationFee:  req.PublicationFee,
		Sections:        sections,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.CreateEventResponse{ID: id.String()})
}

// GetEvent handles GET /api/v1/events/{id}.
func GetEvent(w http.ResponseWriter, r *http.Request) {
	ctx := GetContext()
	if ctx == nil || ctx.Events == nil {
		respondError(w, http.StatusServiceUnavailable, "service not initialized", "")
		return
	}

	id, ok := parseEventID(w, r)
	if !ok {
		return
	}

	e, err := ctx.Events.GetEvent(r.Context(), id)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, mapEventToDTO(e))
}

// ListEvents handles GET /api/v1/events with optional filters.
// Exactly one of ?organizer=, ?venue= or the default published view
// is served per request.
func ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := GetContext()
	if ctx == nil || ctx.Events == nil {
		respondError(w, http.StatusServiceUnavailable, "service not initialized", "")
		return
	}

	var (
		events []*event.Event
		err    error
	)
	switch {
	case r.URL.Query().Get("organizer") != "":
		var organizerID uuid.UUID
		organizerID, err = uuid.Parse(r.URL.Query().Get("organizer"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid organizer id", err.Error())
			return
		}
		events, err = ctx.Events.ListEventsByOrganizer(r.Context(), organizerID)
	case r.URL.Query().Get("venue") != "":
		var venueID uuid.UUID
		venueID, err = uuid.Parse(r.URL.Query().Get("venue"))
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid venue id", err.Error())
			return
		}
		events, err = ctx.Events.ListEventsByVenue(r.Context(), venueID)
	default:
		events, err = ctx.Events.ListPublishedEvents(r.Context())
	}
	if err != nil {
		respondDomainError(w, err)
		return
	}

	data := make([]dto.EventDTO, 0, len(events))
	for _, e := range events {
		data = append(data, mapEventToDTO(e))
	}
	respondJSON(w, http.StatusOK, dto.EventListResponse{Data: data, Total: len(data)})
}

// EditEvent handles PUT /api/v1/events/{id}.
func EditEvent(w http.ResponseWriter, r *http.Request) {
	ctx := GetContext()
	if ctx == nil || ctx.Events == nil {
		respondError(w, http.StatusServiceUnavailable, "service not initialized", "")
		return
	}

	id, ok := parseEventID(w, r)
	if !ok {
		return
	}

	var req dto.EditEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", err.Error())
		return
	}
	sections, err := parseSections(req.Sections)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid sections", err.Error())
		return
	}

	err = ctx.Events.EditEvent(r.Context(), app.EditEventCommand{
		EventID:         id,
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Date:            date,
		DurationHours:   req.DurationHours,
		DurationMinutes: req.DurationMinutes,
		Sections:        sections,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddSection handles POST /api/v1/events/{id}/sections.
func AddSection(w http.ResponseWriter, r *http.Request) {
	ctx := GetContext()
	if ctx == nil || ctx.Events == nil {
		respondError(w, http.StatusServiceUnavailable, "service not initialized", "")
		return
	}

	id, ok := parseEventID(w, r)
	if !ok {
		return
	}

	var req dto.AddSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	sections, err := parseSections([]dto.SectionRequest{req.Section})
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid section", err.Error())
		return
	}

	if err := ctx.Events.AddSection(r.Context(), app.AddSectionCommand{
		EventID: id,
		Section: sections[0],
	}); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartPayment handles POST /api/v1/events/{id}/payment.
func StartPayment(w http.ResponseWriter, r *http.Request) {
	ctx := GetContext()
	if ctx == nil || ctx.Events == nil {
		respondError(w, http.StatusServiceUnavailable, "service not initialized", "")
		return
	}

	id, ok := parseEventID(w, r)
	if !ok {
		return
	}

	var req dto.StartPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := ctx.Events.StartPayment(r.Context(), app.StartPaymentCommand{
		EventID:       id,
		TransactionID: req.TransactionID,
		Amount:        req.Amount,
	}); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PublishEvent handles POST /api/v1/events/{id}/publish.
func PublishEvent(w http.ResponseWriter, r *http.Request) {
	ctx := GetContext()
	if ctx == nil || ctx.Events == nil {
		respondError(w, http.StatusServiceUnavailable, "service not initialized", "")
		return
	}

	id, ok := parseEventID(w, r)
	if !ok {
		return
	}

	var req dto.PublishEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := ctx.Events.PublishEvent(r.Context(), app.PublishEventCommand{
		EventID:                id,
		ConfirmedTransactionID: req.ConfirmedTransactionID,
	}); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartEvent handles POST /api/v1/events/{id}/start.
func StartEvent(w http.ResponseWriter, r *http.Request) {
	ctx := GetContext()
	if ctx == nil || ctx.Events == nil {
		respondError(w, http.StatusServiceUnavailable, "service not initialized", "")
		return
	}

	id, ok := parseEventID(w, r)
	if !ok {
		return
	}

	if err := ctx.Events.StartEvent(r.Context(), app.StartEventCommand{EventID: id}); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// FinishEvent handles POST /api/v1/events/{id}/finish.
func FinishEvent(w http.ResponseWriter, r *http.Request) {
	ctx := GetContext()
	if ctx == nil || ctx.Events == nil {
		respondError(w, http.StatusServiceUnavailable, "service not initialized", "")
		return
	}

	id, ok := parseEventID(w, r)
	if !ok {
		return
	}

	if err := ctx.Events.FinishEvent(r.Context(), app.FinishEventCommand{EventID: id}); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CancelEvent handles POST /api/v1/events/{id}/cancel.
func CancelEvent(w http.ResponseWriter, r *http.Request) {
	ctx := GetContext()
	if ctx == nil || ctx.Events == nil {
		respondError(w, http.StatusServiceUnavailable, "service not initialized", "")
		return
	}

	id, ok := parseEventID(w, r)
	if !ok {
		return
	}

	var req dto.CancelEventRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
	}

	if err := ctx.Events.CancelEvent(r.Context(), app.CancelEventCommand{
		EventID: id,
		Reason:  req.Reason,
	}); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseEventID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event id", err.Error())
		return uuid.Nil, false
	}
	return id, true
}

func parseSections(reqs []dto.SectionRequest) ([]app.SectionInput, error) {
	sections := make([]app.SectionInput, 0, len(reqs))
	for _, s := range reqs {
		input := app.SectionInput{
			Name:     s.Name,
			Capacity: s.Capacity,
			Price:    s.Price,
		}
		if s.ID != "" {
			id, err := uuid.Parse(s.ID)
			if err != nil {
				return nil, err
			}
			input.ID = id
		}
		sections = append(sections, input)
	}
	return sections, nil
}

func mapEventToDTO(e *event.Event) dto.EventDTO {
	sections := make([]dto.SectionDTO, 0, len(e.Sections()))
	for _, s := range e.Sections() {
		sections = append(sections, dto.SectionDTO{
			ID:       s.ID().String(),
			Name:     s.Name(),
			Capacity: s.Capacity(),
			Price:    s.Price().Amount(),
		})
	}

	var publishedAt *string
	if t := e.PublishedAt(); t != nil {
		formatted := t.UTC().Format(time.RFC3339)
		publishedAt = &formatted
	}

	return dto.EventDTO{
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
		CreatedAt:            e.CreatedAt().UTC().Format(time.RFC3339),
		PublishedAt:          publishedAt,
		Version:              e.Version(),
		Sections:             sections,
	}
}

// respondDomainError maps service error kinds onto HTTP status codes.
func respondDomainError(w http.ResponseWriter, err error) {
	kind := errors.GetKind(err)
	status := http.StatusInternalServerError
	switch kind {
	case errors.KindInvalidArgument:
		status = http.StatusBadRequest
	case errors.KindNotFound:
		status = http.StatusNotFound
	case errors.KindConflict:
		status = http.StatusConflict
	case errors.KindInvalidState:
		status = http.StatusUnprocessableEntity
	}
	respondError(w, status, err.Error(), kind.String())
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message, code string) {
	respondJSON(w, status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
