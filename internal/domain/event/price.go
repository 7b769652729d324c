package event

import (
	"fmt"
	"math"

	"github.com/eventhive/events-service/internal/errors"
)

// TicketPrice is the price of admission for a section, in the service's
// base currency. Amounts are kept at two decimal places.
type TicketPrice struct {
	amount float64
}

// NewTicketPrice creates a TicketPrice. Negative amounts are rejected;
// zero means free admission.
func NewTicketPrice(amount float64) (TicketPrice, error) {
	const op = "event.NewTicketPrice"

	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return TicketPrice{}, errors.InvalidArgument(op, "price must be a finite number")
	}
	if amount < 0 {
		return TicketPrice{}, errors.InvalidArgument(op, "price cannot be negative")
	}
	return TicketPrice{amount: round2(amount)}, nil
}

// Amount returns the price amount.
func (p TicketPrice) Amount() float64 {
	return p.amount
}

// IsFree returns true for zero-priced admission.
func (p TicketPrice) IsFree() bool {
	return p.amount == 0
}

// Equal reports whether two prices are the same amount.
func (p TicketPrice) Equal(other TicketPrice) bool {
	return p.amount == other.amount
}

// String formats the price with two decimals.
func (p TicketPrice) String() string {
	return fmt.Sprintf("%.2f", p.amount)
}

// round2 rounds to two decimal places, halves away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
