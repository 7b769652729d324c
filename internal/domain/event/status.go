// Package event provides the core domain model for the event lifecycle.
package event

import "fmt"

// Status represents the current lifecycle state of an event.
type Status string

const (
	// StatusDraft is the initial state; the event is being composed.
	StatusDraft Status = "draft"

	// StatusPendingPayment means the publication payment has been started
	// and the event is waiting for confirmation.
	StatusPendingPayment Status = "pending_payment"

	// StatusPublished means the event is publicly visible.
	StatusPublished Status = "published"

	// StatusInProgress means the event is currently taking place.
	StatusInProgress Status = "in_progress"

	// StatusFinished is the terminal success state.
	StatusFinished Status = "finished"

	// StatusCancelled indicates the event was cancelled.
	StatusCancelled Status = "cancelled"
)

// AllStatuses returns all valid event statuses.
func AllStatuses() []Status {
	return []Status{
		StatusDraft,
		StatusPendingPayment,
		StatusPublished,
		StatusInProgress,
		StatusFinished,
		StatusCancelled,
	}
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is a valid event status.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPendingPayment, StatusPublished,
		StatusInProgress, StatusFinished, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsFinal returns true if this is a terminal status.
func (s Status) IsFinal() bool {
	return s == StatusFinished || s == StatusCancelled
}

// IsActive returns true if the event is past draft but not yet terminal.
func (s Status) IsActive() bool {
	return !s.IsFinal() && s != StatusDraft
}

// CanTransitionTo returns true if transitioning to the target status is valid.
func (s Status) CanTransitionTo(target Status) bool {
	transitions := validTransitions()
	validTargets, exists := transitions[s]
	if !exists {
		return false
	}

	for _, valid := range validTargets {
		if valid == target {
			return true
		}
	}
	return false
}

// validTransitions defines the lifecycle state machine transitions.
func validTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusDraft:          {StatusPendingPayment, StatusCancelled},
		StatusPendingPayment: {StatusPublished, StatusCancelled},
		StatusPublished:      {StatusInProgress, StatusCancelled},
		StatusInProgress:     {StatusFinished, StatusCancelled},
		StatusFinished:       {}, // Terminal - no transitions
		StatusCancelled:      {}, // Terminal - no transitions
	}
}

// NextValidStatuses returns the valid next statuses from the current status.
func (s Status) NextValidStatuses() []Status {
	transitions := validTransitions()
	if valid, exists := transitions[s]; exists {
		return valid
	}
	return nil
}

// ParseStatus parses a string into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid event status: %q", s)
	}
	return status, nil
}

// Description returns a human-readable description of the status.
func (s Status) Description() string {
	switch s {
	case StatusDraft:
		return "Event created, being composed by the organizer"
	case StatusPendingPayment:
		return "Publication payment started, awaiting confirmation"
	case StatusPublished:
		return "Event published and publicly visible"
	case StatusInProgress:
		return "Event is currently taking place"
	case StatusFinished:
		return "Event finished"
	case StatusCancelled:
		return "Event was cancelled"
	default:
		return "Unknown status"
	}
}
