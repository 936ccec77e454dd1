package provider

import (
	"context"
	"errors"

	"github.com/amirasaad/fintrack/pkg/domain/market"
)

// ErrSymbolNotFound is returned when the upstream has no data for a symbol.
var ErrSymbolNotFound = errors.New("symbol not found")

// MarketData fetches quotes, daily history and symbol search results from
// an upstream market data source. Implementations return raw upstream
// data; callers own caching, limiting and normalisation.
type MarketData interface {
	Name() string
	Quote(ctx context.Context, symbol string) (*market.Quote, error)
	// History returns up to days daily candles in any order.
	History(ctx context.Context, symbol string, days int) ([]market.Candle, error)
	Search(ctx context.Context, query string) ([]market.Match, error)
}
