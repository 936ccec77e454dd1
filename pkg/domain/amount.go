package domain

import "github.com/shopspring/decimal"

// Scales of the numeric columns amounts are stored in.
const (
	MoneyPlaces    = 2
	PricePlaces    = 4
	QuantityPlaces = 8
)

// FitsScale reports whether d has no digits past places. Postgres rounds a
// NUMERIC(p,places) write, so anything finer would be stored as a
// different value than the one checked.
func FitsScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Round(places))
}
