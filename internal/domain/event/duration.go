package event

import (
	"fmt"
	"time"

	"github.com/eventhive/events-service/internal/errors"
)

// EventDuration is how long an event runs, expressed as hours and minutes.
type EventDuration struct {
	hours   int
	minutes int
}

// NewEventDuration creates an EventDuration. Hours and minutes must be
// non-negative, minutes below 60, and the total strictly positive.
func NewEventDuration(hours, minutes int) (EventDuration, error) {
	const op = "event.NewEventDuration"

	if hours < 0 {
		return EventDuration{}, errors.InvalidArgument(op, "hours cannot be negative")
	}
	if minutes < 0 || minutes > 59 {
		return EventDuration{}, errors.InvalidArgument(op, "minutes must be between 0 and 59")
	}
	if hours == 0 && minutes == 0 {
		return EventDuration{}, errors.InvalidArgument(op, "duration must be greater than zero")
	}
	return EventDuration{hours: hours, minutes: minutes}, nil
}

// Hours returns the hour component.
func (d EventDuration) Hours() int {
	return d.hours
}

// Minutes returns the minute component.
func (d EventDuration) Minutes() int {
	return d.minutes
}

// TotalMinutes returns the duration in whole minutes.
func (d EventDuration) TotalMinutes() int {
	return d.hours*60 + d.minutes
}

// AsDuration converts to a time.Duration.
func (d EventDuration) AsDuration() time.Duration {
	return time.Duration(d.TotalMinutes()) * time.Minute
}

// IsZero returns true if the duration has not been set.
func (d EventDuration) IsZero() bool {
	return d.hours == 0 && d.minutes == 0
}

// String formats the duration as "2h30m".
func (d EventDuration) String() string {
	return fmt.Sprintf("%dh%02dm", d.hours, d.minutes)
}
