package domain_test

import (
	"testing"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFitsScale(t *testing.T) {
	testCases := []struct {
		value  string
		places int32
		want   bool
	}{
		{"10", domain.MoneyPlaces, true},
		{"10.50", domain.MoneyPlaces, true},
		{"-0.01", domain.MoneyPlaces, true},
		{"0.005", domain.MoneyPlaces, false},
		{"1.999", domain.MoneyPlaces, false},
		{"187.1234", domain.PricePlaces, true},
		{"187.12345", domain.PricePlaces, false},
		{"0.00000001", domain.QuantityPlaces, true},
		{"0.000000001", domain.QuantityPlaces, false},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, domain.FitsScale(decimal.RequireFromString(tc.value), tc.places), tc.value)
	}
}
