package event

import (
	"time"

	"github.com/eventhive/events-service/internal/errors"
)

// EventDate is the calendar date an event takes place on.
// Time-of-day is not significant; comparisons are date-only.
type EventDate struct {
	value time.Time
}

// NewEventDate creates an EventDate, rejecting dates before today.
// The check applies at construction time only; rehydrated events may
// carry past dates.
func NewEventDate(value time.Time) (EventDate, error) {
	const op = "event.NewEventDate"

	if value.IsZero() {
		return EventDate{}, errors.InvalidArgument(op, "event date is required")
	}
	day := dateOnly(value)
	if day.Before(dateOnly(time.Now())) {
		return EventDate{}, errors.InvalidArgument(op, "event date cannot be in the past")
	}
	return EventDate{value: day}, nil
}

// Value returns the underlying date (UTC midnight).
func (d EventDate) Value() time.Time {
	return d.value
}

// IsZero returns true if the date has not been set.
func (d EventDate) IsZero() bool {
	return d.value.IsZero()
}

// HasArrived returns true if the reference instant falls on or after the
// event date, comparing dates only.
func (d EventDate) HasArrived(ref time.Time) bool {
	return !dateOnly(ref).Before(d.value)
}

// Equal reports whether two dates are the same calendar day.
func (d EventDate) Equal(other EventDate) bool {
	return d.value.Equal(other.value)
}

// String formats the date as YYYY-MM-DD.
func (d EventDate) String() string {
	return d.value.Format("2006-01-02")
}

// dateOnly truncates an instant to its calendar day in UTC.
func dateOnly(t time.Time) time.Time {
	y, m, day := t.UTC().Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}
