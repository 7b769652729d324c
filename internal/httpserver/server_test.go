package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhive/events-service/internal/app"
	"github.com/eventhive/events-service/internal/config"
	"github.com/eventhive/events-service/internal/httpserver/dto"
	"github.com/eventhive/events-service/internal/infrastructure/persistence"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	repo := persistence.NewInMemoryEventRepository()
	publisher := persistence.NewInMemoryEventPublisher()
	service := app.NewService(repo, publisher, nil)

	return NewServer(ServerDeps{
		Config: config.ServerConfig{Address: ":0"},
		Events: service,
	})
}

func doJSON(t *testing.T, server *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func validCreateRequest() dto.CreateEventRequest {
	return dto.CreateEventRequest{
		Name:            "Summer Concert",
		Description:     "Open air concert",
		Category:        "music",
		Date:            time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		DurationHours:   2,
		DurationMinutes: 30,
		OrganizerID:     "7f6c8f0a-0c7e-4b9d-9a64-2f1f8f4f9d01",
		VenueID:         "9f2b2c44-31cd-4c0e-8f3a-6f2ce9a3b502",
		PublicationFee:  49.99,
		Sections: []dto.SectionRequest{
			{Name: "General Admission", Capacity: 100, Price: 25.50},
		},
	}
}

func createEvent(t *testing.T, server *Server) string {
	t.Helper()

	rec := doJSON(t, server, http.MethodPost, "/api/v1/events", validCreateRequest())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp dto.CreateEventResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestCreateEvent(t *testing.T) {
	server := newTestServer(t)
	id := createEvent(t, server)

	rec := doJSON(t, server, http.MethodGet, "/api/v1/events/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var e dto.EventDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, "Summer Concert", e.Name)
	assert.Equal(t, "draft", e.Status)
	assert.Equal(t, 1, e.Version)
	assert.Len(t, e.Sections, 1)
}

func TestCreateEvent_BadRequests(t *testing.T) {
	server := newTestServer(t)

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewBufferString("{nope"))
		rec := httptest.NewRecorder()
		server.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad date", func(t *testing.T) {
		body := validCreateRequest()
		body.Date = "tomorrow"
		rec := doJSON(t, server, http.MethodPost, "/api/v1/events", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad organizer id", func(t *testing.T) {
		body := validCreateRequest()
		body.OrganizerID = "not-a-uuid"
		rec := doJSON(t, server, http.MethodPost, "/api/v1/events", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("blank name", func(t *testing.T) {
		body := validCreateRequest()
		body.Name = " "
		rec := doJSON(t, server, http.MethodPost, "/api/v1/events", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetEvent_NotFound(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodGet, "/api/v1/events/1b4e28ba-2fa1-11d2-883f-0016d3cca427", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, server, http.MethodGet, "/api/v1/events/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLifecycleEndpoints(t *testing.T) {
	server := newTestServer(t)
	id := createEvent(t, server)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/events/"+id+"/payment", dto.StartPaymentRequest{
		TransactionID: "tx-1",
		Amount:        49.99,
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, server, http.MethodPost, "/api/v1/events/"+id+"/publish", dto.PublishEventRequest{
		ConfirmedTransactionID: "tx-1",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, server, http.MethodGet, "/api/v1/events/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var e dto.EventDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, "published", e.Status)
	assert.NotNil(t, e.PublishedAt)
	assert.Empty(t, e.PaymentTransactionID)
}

func TestPaymentConflictMapsTo409(t *testing.T) {
	server := newTestServer(t)
	id := createEvent(t, server)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/events/"+id+"/payment", dto.StartPaymentRequest{
		TransactionID: "tx-1",
		Amount:        1.00, // wrong fee
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "conflict", resp.Code)
}

func TestInvalidStateMapsTo422(t *testing.T) {
	server := newTestServer(t)
	id := createEvent(t, server)

	// Draft events cannot start
	rec := doJSON(t, server, http.MethodPost, "/api/v1/events/"+id+"/start", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestEditEvent(t *testing.T) {
	server := newTestServer(t)
	id := createEvent(t, server)

	rec := doJSON(t, server, http.MethodPut, "/api/v1/events/"+id, dto.EditEventRequest{
		Name:            "Winter Concert",
		Category:        "music",
		Date:            time.Now().AddDate(0, 2, 0).Format("2006-01-02"),
		DurationHours:   3,
		DurationMinutes: 0,
		Sections: []dto.SectionRequest{
			{Name: "Balcony", Capacity: 50, Price: 40},
		},
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, server, http.MethodGet, "/api/v1/events/"+id, nil)
	var e dto.EventDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, "Winter Concert", e.Name)
	assert.Equal(t, 2, e.Version)
}

func TestAddSection(t *testing.T) {
	server := newTestServer(t)
	id := createEvent(t, server)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/events/"+id+"/sections", dto.AddSectionRequest{
		Section: dto.SectionRequest{Name: "VIP", Capacity: 20, Price: 99.99},
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, server, http.MethodGet, "/api/v1/events/"+id, nil)
	var e dto.EventDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Len(t, e.Sections, 2)
}

func TestCancelEvent(t *testing.T) {
	server := newTestServer(t)
	id := createEvent(t, server)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/events/"+id+"/cancel", dto.CancelEventRequest{
		Reason: "venue flooded",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, server, http.MethodGet, "/api/v1/events/"+id, nil)
	var e dto.EventDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	assert.Equal(t, "cancelled", e.Status)

	// Cancelling again is rejected
	rec = doJSON(t, server, http.MethodPost, "/api/v1/events/"+id+"/cancel", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListEvents(t *testing.T) {
	server := newTestServer(t)
	id := createEvent(t, server)

	// Published view is empty while the event is a draft
	rec := doJSON(t, server, http.MethodGet, "/api/v1/events", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list dto.EventListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Zero(t, list.Total)

	// Organizer filter finds the draft
	req := validCreateRequest()
	rec = doJSON(t, server, http.MethodGet, fmt.Sprintf("/api/v1/events?organizer=%s", req.OrganizerID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, id, list.Data[0].ID)

	// Bad filter value
	rec = doJSON(t, server, http.MethodGet, "/api/v1/events?venue=nope", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
