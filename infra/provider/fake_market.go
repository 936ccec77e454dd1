package provider

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/domain/market"
	"github.com/amirasaad/fintrack/pkg/provider"
	"github.com/shopspring/decimal"
)

var fakeCatalog = []market.Match{
	{Symbol: "AAPL", Name: "Apple Inc.", Exchange: "United States", Type: "Equity"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Exchange: "United States", Type: "Equity"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Exchange: "United States", Type: "Equity"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Exchange: "United States", Type: "Equity"},
	{Symbol: "TSLA", Name: "Tesla Inc.", Exchange: "United States", Type: "Equity"},
	{Symbol: "SPY", Name: "SPDR S&P 500 ETF Trust", Exchange: "United States", Type: "ETF"},
	{Symbol: "BTC-USD", Name: "Bitcoin USD", Exchange: "CCC", Type: "Cryptocurrency"},
	{Symbol: "ETH-USD", Name: "Ethereum USD", Exchange: "CCC", Type: "Cryptocurrency"},
}

// FakeMarketProvider returns deterministic prices derived from the symbol.
// It backs development setups and tests that must not reach the network.
type FakeMarketProvider struct {
	now func() time.Time
}

// NewFakeMarketProvider creates a FakeMarketProvider anchored at time.Now.
func NewFakeMarketProvider() *FakeMarketProvider {
	return &FakeMarketProvider{now: time.Now}
}

func (p *FakeMarketProvider) Name() string {
	return "fake"
}

func seed(symbol string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	return h.Sum32()
}

func basePrice(symbol string) decimal.Decimal {
	return decimal.New(int64(5000+seed(symbol)%45000), -2)
}

func (p *FakeMarketProvider) Quote(_ context.Context, symbol string) (*market.Quote, error) {
	price := basePrice(symbol)
	change := decimal.New(int64(seed(symbol)%400)-200, -2)
	name := symbol
	for _, m := range fakeCatalog {
		if m.Symbol == symbol {
			name = m.Name
		}
	}
	return &market.Quote{
		Symbol:        symbol,
		Name:          name,
		Price:         price,
		Change:        change,
		ChangePercent: change.Div(price).Mul(decimal.NewFromInt(100)).Round(4),
		Currency:      "USD",
	}, nil
}

func (p *FakeMarketProvider) History(_ context.Context, symbol string, days int) ([]market.Candle, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}
	base := basePrice(symbol)
	s := seed(symbol)
	end := p.now().UTC()
	out := make([]market.Candle, 0, days)
	for i := 0; i < days; i++ {
		day := end.AddDate(0, 0, -i)
		drift := decimal.New(int64((s+uint32(i)*7919)%500)-250, -2)
		closePrice := base.Add(drift)
		out = append(out, market.Candle{
			Date:   day.Format("2006-01-02"),
			Open:   closePrice.Sub(decimal.New(50, -2)),
			High:   closePrice.Add(decimal.NewFromInt(1)),
			Low:    closePrice.Sub(decimal.NewFromInt(1)),
			Close:  closePrice,
			Volume: int64(100000 + (s+uint32(i))%900000),
		})
	}
	return out, nil
}

func (p *FakeMarketProvider) Search(_ context.Context, query string) ([]market.Match, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]market.Match, 0)
	for _, m := range fakeCatalog {
		if strings.Contains(strings.ToLower(m.Symbol), q) || strings.Contains(strings.ToLower(m.Name), q) {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ provider.MarketData = (*FakeMarketProvider)(nil)
