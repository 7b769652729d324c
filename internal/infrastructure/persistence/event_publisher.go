// Package persistence provides infrastructure implementations for data persistence.
package persistence

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/eventhive/events-service/internal/domain/event"
)

// InMemoryEventPublisher implements event.Publisher with in-memory storage.
// This is useful for testing and broker-disabled runs.
// Production deployments use the RabbitMQ publisher instead.
type InMemoryEventPublisher struct {
	mu       sync.RWMutex
	events   []event.DomainEvent
	handlers []EventHandler
}

// EventHandler is a function that handles domain events.
type EventHandler func(event event.DomainEvent)

// NewInMemoryEventPublisher creates a new in-memory event publisher.
func NewInMemoryEventPublisher() *InMemoryEventPublisher {
	return &InMemoryEventPublisher{
		events:   make([]event.DomainEvent, 0, 8),
		handlers: make([]EventHandler, 0, 2),
	}
}

// Publish publishes domain events.
func (p *InMemoryEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	// Store events under lock
	p.mu.Lock()
	p.events = append(p.events, events...)
	// Copy handlers to avoid holding lock during handler execution
	handlers := make([]EventHandler, len(p.handlers))
	copy(handlers, p.handlers)
	p.mu.Unlock()

	// Notify handlers without holding the lock so handlers can call back
	// into the publisher if needed
	for _, ev := range events {
		for _, handler := range handlers {
			handler(ev)
		}
	}

	return nil
}

// Subscribe adds an event handler.
func (p *InMemoryEventPublisher) Subscribe(handler EventHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers = append(p.handlers, handler)
}

// Events returns all published events.
func (p *InMemoryEventPublisher) Events() []event.DomainEvent {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]event.DomainEvent{}, p.events...)
}

// ClearEvents clears all stored events.
func (p *InMemoryEventPublisher) ClearEvents() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = p.events[:0] // Preserve capacity for reuse
}

// EventsByName returns events with a specific name.
func (p *InMemoryEventPublisher) EventsByName(eventName string) []event.DomainEvent {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var result []event.DomainEvent
	for _, ev := range p.events {
		if ev.EventName() == eventName {
			result = append(result, ev)
		}
	}
	return result
}

// EventsByAggregateID returns events for a specific aggregate.
func (p *InMemoryEventPublisher) EventsByAggregateID(id uuid.UUID) []event.DomainEvent {
	p.mu.RLock()
	defer p.mu.RUnlock()

	var result []event.DomainEvent
	for _, ev := range p.events {
		if ev.AggregateID() == id {
			result = append(result, ev)
		}
	}
	return result
}

// NoOpEventPublisher is a no-op implementation for when events are not needed.
type NoOpEventPublisher struct{}

// NewNoOpEventPublisher creates a new no-op event publisher.
func NewNoOpEventPublisher() *NoOpEventPublisher {
	return &NoOpEventPublisher{}
}

// Publish does nothing.
func (p *NoOpEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	return nil
}
