package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain/market"
	"github.com/amirasaad/fintrack/pkg/provider"
	"github.com/shopspring/decimal"
)

// compactSize is the number of days TIME_SERIES_DAILY returns without
// outputsize=full.
const compactSize = 100

// AlphaVantageProvider implements provider.MarketData for alphavantage.co.
type AlphaVantageProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewAlphaVantageProvider creates a provider from the market config.
func NewAlphaVantageProvider(cfg *config.Market, logger *slog.Logger) *AlphaVantageProvider {
	return &AlphaVantageProvider{
		apiKey:  cfg.ApiKey,
		baseURL: cfg.ApiUrl,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		logger: logger,
	}
}

func (p *AlphaVantageProvider) Name() string {
	return "alphavantage"
}

type globalQuoteResponse struct {
	GlobalQuote map[string]string `json:"Global Quote"`
}

type dailySeriesResponse struct {
	Series map[string]map[string]string `json:"Time Series (Daily)"`
}

type searchResponse struct {
	BestMatches []map[string]string `json:"bestMatches"`
}

func (p *AlphaVantageProvider) Quote(ctx context.Context, symbol string) (*market.Quote, error) {
	var resp globalQuoteResponse
	if err := p.get(ctx, url.Values{"function": {"GLOBAL_QUOTE"}, "symbol": {symbol}}, &resp); err != nil {
		return nil, err
	}
	q := resp.GlobalQuote
	if len(q) == 0 || q["05. price"] == "" {
		return nil, fmt.Errorf("%w: %s", provider.ErrSymbolNotFound, symbol)
	}
	price, err := decimal.NewFromString(q["05. price"])
	if err != nil {
		return nil, fmt.Errorf("invalid price %q: %w", q["05. price"], err)
	}
	return &market.Quote{
		Symbol:        firstNonEmpty(q["01. symbol"], symbol),
		Name:          symbol,
		Price:         price,
		Change:        parseDecimal(q["09. change"]),
		ChangePercent: parseDecimal(strings.TrimSuffix(q["10. change percent"], "%")),
		Currency:      "USD",
	}, nil
}

func (p *AlphaVantageProvider) History(ctx context.Context, symbol string, days int) ([]market.Candle, error) {
	params := url.Values{"function": {"TIME_SERIES_DAILY"}, "symbol": {symbol}}
	if days > compactSize {
		params.Set("outputsize", "full")
	}
	var resp dailySeriesResponse
	if err := p.get(ctx, params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Series) == 0 {
		return nil, fmt.Errorf("%w: %s", provider.ErrSymbolNotFound, symbol)
	}
	candles := make([]market.Candle, 0, len(resp.Series))
	for date, bar := range resp.Series {
		vol := parseDecimal(bar["5. volume"])
		candles = append(candles, market.Candle{
			Date:   date,
			Open:   parseDecimal(bar["1. open"]),
			High:   parseDecimal(bar["2. high"]),
			Low:    parseDecimal(bar["3. low"]),
			Close:  parseDecimal(bar["4. close"]),
			Volume: vol.IntPart(),
		})
	}
	return candles, nil
}

func (p *AlphaVantageProvider) Search(ctx context.Context, query string) ([]market.Match, error) {
	var resp searchResponse
	if err := p.get(ctx, url.Values{"function": {"SYMBOL_SEARCH"}, "keywords": {query}}, &resp); err != nil {
		return nil, err
	}
	out := make([]market.Match, 0, len(resp.BestMatches))
	for _, m := range resp.BestMatches {
		out = append(out, market.Match{
			Symbol:   m["1. symbol"],
			Name:     m["2. name"],
			Type:     m["3. type"],
			Exchange: m["4. region"],
		})
	}
	return out, nil
}

// get performs one API call. Alpha Vantage reports throttling and bad
// requests with HTTP 200 and a "Note", "Information" or "Error Message"
// body, so those keys are checked before decoding into out. An "Error
// Message" on a symbol lookup means the symbol is unknown, unless it is
// complaining about the key.
func (p *AlphaVantageProvider) get(ctx context.Context, params url.Values, out any) error {
	params.Set("apikey", p.apiKey)
	endpoint := p.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	for _, key := range []string{"Error Message", "Note", "Information"} {
		if raw, ok := envelope[key]; ok {
			var msg string
			_ = json.Unmarshal(raw, &msg)
			if key == "Error Message" && params.Has("symbol") && !strings.Contains(strings.ToLower(msg), "apikey") {
				return fmt.Errorf("%w: %s", provider.ErrSymbolNotFound, params.Get("symbol"))
			}
			p.logger.Warn("Alpha Vantage rejected request", "function", params.Get("function"), "reason", msg)
			return fmt.Errorf("API returned %s: %s", strings.ToLower(key), msg)
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

var _ provider.MarketData = (*AlphaVantageProvider)(nil)
