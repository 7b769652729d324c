package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/eventhive/events-service/internal/domain/event"
	"github.com/eventhive/events-service/internal/errors"
)

func TestInMemoryRepository_AddAndGet(t *testing.T) {
	repo := NewInMemoryEventRepository()
	ctx := context.Background()
	e := newTestEvent(t)

	if err := repo.Add(ctx, e); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	loaded, err := repo.GetByID(ctx, e.ID())
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if loaded.ID() != e.ID() {
		t.Errorf("loaded ID = %v, want %v", loaded.ID(), e.ID())
	}
	if loaded.Name() != e.Name() {
		t.Errorf("loaded Name = %q, want %q", loaded.Name(), e.Name())
	}
	if loaded.Version() != e.Version() {
		t.Errorf("loaded Version = %d, want %d", loaded.Version(), e.Version())
	}
	if len(loaded.Sections()) != 1 {
		t.Errorf("loaded Sections = %d, want 1", len(loaded.Sections()))
	}
}

func TestInMemoryRepository_AddDuplicate(t *testing.T) {
	repo := NewInMemoryEventRepository()
	ctx := context.Background()
	e := newTestEvent(t)

	if err := repo.Add(ctx, e); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	err := repo.Add(ctx, e)
	if !errors.IsKind(err, errors.KindConflict) {
		t.Errorf("second Add() kind = %v, want conflict", errors.GetKind(err))
	}
}

func TestInMemoryRepository_GetMissing(t *testing.T) {
	repo := NewInMemoryEventRepository()

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("GetByID() kind = %v, want not_found", errors.GetKind(err))
	}
}

func TestInMemoryRepository_Update(t *testing.T) {
	repo := NewInMemoryEventRepository()
	ctx := context.Background()
	e := newTestEvent(t)

	if err := repo.Add(ctx, e); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	advanceToPendingPayment(t, e)
	if err := repo.Update(ctx, e); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	loaded, err := repo.GetByID(ctx, e.ID())
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if loaded.Status() != event.StatusPendingPayment {
		t.Errorf("loaded Status = %v, want %v", loaded.Status(), event.StatusPendingPayment)
	}
	if loaded.Version() != 2 {
		t.Errorf("loaded Version = %d, want 2", loaded.Version())
	}
}

func TestInMemoryRepository_UpdateStaleVersion(t *testing.T) {
	repo := NewInMemoryEventRepository()
	ctx := context.Background()
	e := newTestEvent(t)

	if err := repo.Add(ctx, e); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// Two writers load the same snapshot; the slower one must lose.
	first, err := repo.GetByID(ctx, e.ID())
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	second, err := repo.GetByID(ctx, e.ID())
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	advanceToPendingPayment(t, first)
	if err := repo.Update(ctx, first); err != nil {
		t.Fatalf("first Update() error = %v", err)
	}

	advanceToPendingPayment(t, second)
	err = repo.Update(ctx, second)
	if !errors.IsKind(err, errors.KindConflict) {
		t.Errorf("stale Update() kind = %v, want conflict", errors.GetKind(err))
	}
}

func TestInMemoryRepository_UpdateMissing(t *testing.T) {
	repo := NewInMemoryEventRepository()
	e := newTestEvent(t)
	advanceToPendingPayment(t, e)

	err := repo.Update(context.Background(), e)
	if !errors.IsKind(err, errors.KindNotFound) {
		t.Errorf("Update() kind = %v, want not_found", errors.GetKind(err))
	}
}

func TestInMemoryRepository_Lists(t *testing.T) {
	repo := NewInMemoryEventRepository()
	ctx := context.Background()

	draft := newTestEvent(t)
	published := newTestEvent(t)
	advanceToPendingPayment(t, published)
	if _, err := published.Publish("tx-1", time.Now()); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	for _, e := range []*event.Event{draft, published} {
		if err := repo.Add(ctx, e); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	got, err := repo.ListPublished(ctx)
	if err != nil {
		t.Fatalf("ListPublished() error = %v", err)
	}
	if len(got) != 1 || got[0].ID() != published.ID() {
		t.Errorf("ListPublished() = %d events, want only the published one", len(got))
	}

	byOrganizer, err := repo.ListByOrganizer(ctx, draft.OrganizerID())
	if err != nil {
		t.Fatalf("ListByOrganizer() error = %v", err)
	}
	if len(byOrganizer) != 1 || byOrganizer[0].ID() != draft.ID() {
		t.Errorf("ListByOrganizer() = %d events, want 1", len(byOrganizer))
	}

	byVenue, err := repo.ListByVenue(ctx, published.VenueID())
	if err != nil {
		t.Fatalf("ListByVenue() error = %v", err)
	}
	if len(byVenue) != 1 || byVenue[0].ID() != published.ID() {
		t.Errorf("ListByVenue() = %d events, want 1", len(byVenue))
	}
}

func TestInMemoryRepository_CanceledContext(t *testing.T) {
	repo := NewInMemoryEventRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := repo.Add(ctx, newTestEvent(t)); err == nil {
		t.Error("Add() with canceled context should fail")
	}
	if _, err := repo.GetByID(ctx, uuid.New()); err == nil {
		t.Error("GetByID() with canceled context should fail")
	}
}
