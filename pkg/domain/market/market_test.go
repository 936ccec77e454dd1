package market_test

import (
	"testing"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSymbol(t *testing.T) {
	for in, want := range map[string]string{
		" aapl ":   "AAPL",
		"brk.b":    "BRK.B",
		"^gspc":    "^GSPC",
		"eurusd=x": "EURUSD=X",
	} {
		got, err := market.NormalizeSymbol(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	for _, in := range []string{"", "<script>", "AAPL MSFT", "ABCDEFGHIJKLMNOP"} {
		_, err := market.NormalizeSymbol(in)
		assert.ErrorIs(t, err, domain.ErrValidation, in)
	}
}

func TestNormalizeHistory(t *testing.T) {
	candles := []market.Candle{
		{Date: "2025-01-03", Close: decimal.NewFromInt(3)},
		{Date: "2025-01-01", Close: decimal.NewFromInt(1)},
		{Date: "2025-01-02", Close: decimal.NewFromInt(2)},
		{Date: "2025-01-02", Close: decimal.NewFromInt(22)},
		{Date: "", Close: decimal.NewFromInt(9)},
	}

	out := market.NormalizeHistory(candles, 0)
	require.Len(t, out, 3)
	assert.Equal(t, "2025-01-01", out[0].Date)
	assert.Equal(t, "2025-01-03", out[2].Date)
	assert.True(t, decimal.NewFromInt(22).Equal(out[1].Close))

	out = market.NormalizeHistory(candles, 2)
	require.Len(t, out, 2)
	assert.Equal(t, "2025-01-02", out[0].Date)
	assert.Equal(t, "2025-01-03", out[1].Date)
}
