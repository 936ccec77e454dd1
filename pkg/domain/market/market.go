// Package market holds the normalised shapes returned by the quote gateway.
package market

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/shopspring/decimal"
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.\-^=]{1,15}$`)

// Quote is the latest price of a symbol.
type Quote struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Currency      string          `json:"currency"`
}

// Candle is one trading day. Date is formatted 2006-01-02.
type Candle struct {
	Date   string          `json:"date"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// Match is a symbol search hit.
type Match struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Type     string `json:"type"`
}

// NormalizeSymbol upper-cases and validates a ticker symbol.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolPattern.MatchString(s) {
		return "", fmt.Errorf("%w: invalid symbol %q", domain.ErrValidation, symbol)
	}
	return s, nil
}

// NormalizeHistory sorts candles ascending by date, keeps the last
// candle seen for each trading day and returns at most days entries
// counted back from the newest.
func NormalizeHistory(candles []Candle, days int) []Candle {
	byDay := make(map[string]Candle, len(candles))
	for _, c := range candles {
		if c.Date == "" {
			continue
		}
		byDay[c.Date] = c
	}
	out := make([]Candle, 0, len(byDay))
	for _, c := range byDay {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	if days > 0 && len(out) > days {
		out = out[len(out)-days:]
	}
	return out
}
