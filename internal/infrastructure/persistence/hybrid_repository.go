package persistence

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/felixgeelhaar/fortify/circuitbreaker"
	"github.com/felixgeelhaar/fortify/retry"
	"github.com/google/uuid"

	"github.com/eventhive/events-service/internal/domain/event"
	"github.com/eventhive/events-service/internal/errors"
)

// HybridConfig configures resilience around the primary repository.
type HybridConfig struct {
	RetryAttempts    int
	RetryInitialWait time.Duration
	RetryMaxWait     time.Duration

	CircuitBreakerThreshold   int           // consecutive failures before opening
	CircuitBreakerTimeout     time.Duration // how long to stay open
	CircuitBreakerMaxRequests int           // requests allowed in half-open
}

// DefaultHybridConfig returns sensible defaults for the hybrid repository.
func DefaultHybridConfig() HybridConfig {
	return HybridConfig{
		RetryAttempts:             3,
		RetryInitialWait:          100 * time.Millisecond,
		RetryMaxWait:              2 * time.Second,
		CircuitBreakerThreshold:   5,
		CircuitBreakerTimeout:     30 * time.Second,
		CircuitBreakerMaxRequests: 3,
	}
}

// HybridEventRepository decorates a primary repository with retry and a
// circuit breaker, falling back to the file store when the primary is
// unreachable. Business failures (validation, version conflicts, not
// found) pass through untouched; only transient storage failures engage
// the fallback path.
type HybridEventRepository struct {
	primary  event.Repository
	fallback *FallbackStore
	logger   *log.Logger
	retrier  retry.Retry[struct{}]
	breaker  circuitbreaker.CircuitBreaker[struct{}]
}

// NewHybridEventRepository creates a hybrid repository around primary.
func NewHybridEventRepository(primary event.Repository, fallback *FallbackStore, cfg HybridConfig, logger *log.Logger) *HybridEventRepository {
	if logger == nil {
		logger = log.Default()
	}

	threshold := cfg.CircuitBreakerThreshold
	return &HybridEventRepository{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		retrier: retry.New[struct{}](retry.Config{
			MaxAttempts:   cfg.RetryAttempts,
			InitialDelay:  cfg.RetryInitialWait,
			MaxDelay:      cfg.RetryMaxWait,
			BackoffPolicy: retry.BackoffExponential,
			Multiplier:    2.0,
			Jitter:        true,
			IsRetryable:   isTransient,
		}),
		breaker: circuitbreaker.New[struct{}](circuitbreaker.Config{
			MaxRequests: uint32(cfg.CircuitBreakerMaxRequests), // #nosec G115 -- bounded config value
			Interval:    cfg.CircuitBreakerTimeout,
			Timeout:     cfg.CircuitBreakerTimeout,
			ReadyToTrip: func(counts circuitbreaker.Counts) bool {
				return counts.ConsecutiveFailures >= uint32(threshold) // #nosec G115 -- bounded config value
			},
		}),
	}
}

// Add persists a new event, landing it in the fallback store when the
// primary cannot be reached.
func (r *HybridEventRepository) Add(ctx context.Context, e *event.Event) error {
	err := r.execute(ctx, func(ctx context.Context) error {
		return r.primary.Add(ctx, e)
	})
	if err == nil {
		return nil
	}
	if !isTransient(err) {
		return err
	}

	r.logger.Warn("primary store unavailable, saving to fallback",
		"event_id", e.ID(), "error", err)
	return r.fallback.Save(ctx, e)
}

// GetByID loads an event, serving from the fallback store when the
// primary cannot be reached.
func (r *HybridEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*event.Event, error) {
	var loaded *event.Event
	err := r.execute(ctx, func(ctx context.Context) error {
		var opErr error
		loaded, opErr = r.primary.GetByID(ctx, id)
		return opErr
	})
	if err == nil {
		return loaded, nil
	}
	if !isTransient(err) {
		return nil, err
	}

	r.logger.Warn("primary store unavailable, reading from fallback",
		"event_id", id, "error", err)
	return r.fallback.GetByID(ctx, id)
}

// Update persists changes to an event, landing them in the fallback
// store when the primary cannot be reached. Version conflicts are not
// transient and never engage the fallback.
func (r *HybridEventRepository) Update(ctx context.Context, e *event.Event) error {
	err := r.execute(ctx, func(ctx context.Context) error {
		return r.primary.Update(ctx, e)
	})
	if err == nil {
		return nil
	}
	if !isTransient(err) {
		return err
	}

	r.logger.Warn("primary store unavailable, saving to fallback",
		"event_id", e.ID(), "error", err)
	return r.fallback.Save(ctx, e)
}

// ListPublished returns all published events. When the primary is
// unreachable the query degrades to an empty result with a warning.
func (r *HybridEventRepository) ListPublished(ctx context.Context) ([]*event.Event, error) {
	return r.listDegraded(ctx, "published events", func(ctx context.Context) ([]*event.Event, error) {
		return r.primary.ListPublished(ctx)
	})
}

// ListByOrganizer returns all events owned by an organizer, degrading
// to an empty result when the primary is unreachable.
func (r *HybridEventRepository) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]*event.Event, error) {
	return r.listDegraded(ctx, "events by organizer", func(ctx context.Context) ([]*event.Event, error) {
		return r.primary.ListByOrganizer(ctx, organizerID)
	})
}

// ListByVenue returns all events held at a venue, degrading to an
// empty result when the primary is unreachable.
func (r *HybridEventRepository) ListByVenue(ctx context.Context, venueID uuid.UUID) ([]*event.Event, error) {
	return r.listDegraded(ctx, "events by venue", func(ctx context.Context) ([]*event.Event, error) {
		return r.primary.ListByVenue(ctx, venueID)
	})
}

func (r *HybridEventRepository) listDegraded(ctx context.Context, what string, query func(context.Context) ([]*event.Event, error)) ([]*event.Event, error) {
	var listed []*event.Event
	err := r.execute(ctx, func(ctx context.Context) error {
		var opErr error
		listed, opErr = query(ctx)
		return opErr
	})
	if err == nil {
		return listed, nil
	}
	if !isTransient(err) {
		return nil, err
	}

	r.logger.Warn("primary store unavailable, listing degraded to empty result",
		"query", what, "error", err)
	return []*event.Event{}, nil
}

// execute runs op through the circuit breaker and retry policy. Results
// are captured by the closures; the breaker only tracks success/failure.
// Errors without a service kind (breaker rejections, raw driver errors)
// are reclassified as transient IO so they engage the fallback path.
func (r *HybridEventRepository) execute(ctx context.Context, op func(context.Context) error) error {
	_, err := r.breaker.Execute(ctx, func(ctx context.Context) (struct{}, error) {
		return r.retrier.Do(ctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, op(ctx)
		})
	})
	if err == nil {
		return nil
	}
	if errors.GetKind(err) == errors.KindUnknown &&
		!stderrors.Is(err, context.Canceled) && !stderrors.Is(err, context.DeadlineExceeded) {
		return errors.IOWrap(err, "persistence.HybridEventRepository", "primary store unavailable")
	}
	return err
}

// isTransient reports whether an error indicates a storage failure that
// the fallback path should absorb.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, context.Canceled) {
		return false
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch errors.GetKind(err) {
	case errors.KindIO, errors.KindTimeout:
		return true
	default:
		return false
	}
}
