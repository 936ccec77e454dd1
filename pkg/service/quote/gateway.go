// Package quote fronts the market data provider with a per-caller rate
// limit, a read-through cache and de-duplication of concurrent misses.
package quote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/cache"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain"
	"github.com/amirasaad/fintrack/pkg/domain/market"
	"github.com/amirasaad/fintrack/pkg/provider"
	"github.com/amirasaad/fintrack/pkg/ratelimit"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultHistoryDays = 30
	MaxHistoryDays     = 365

	defaultFetchTimeout = 10 * time.Second
)

// Gateway is safe for concurrent use.
type Gateway struct {
	provider provider.MarketData
	store    cache.Store
	limiter  *ratelimit.FixedWindow
	cfg      *config.Market
	inflight singleflight.Group
	logger   *slog.Logger
}

// New creates a gateway. A nil limiter disables per-caller limiting.
func New(
	p provider.MarketData,
	store cache.Store,
	limiter *ratelimit.FixedWindow,
	cfg *config.Market,
	logger *slog.Logger,
) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		provider: p,
		store:    store,
		limiter:  limiter,
		cfg:      cfg,
		logger:   logger.With("component", "quote", "provider", p.Name()),
	}
}

// Quote returns the latest price of symbol.
func (g *Gateway) Quote(ctx context.Context, caller, symbol string) (*market.Quote, error) {
	sym, err := market.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if err := g.allow(ctx, caller); err != nil {
		return nil, err
	}
	var q market.Quote
	err = g.readThrough(ctx, "quote:"+sym, g.cfg.QuoteTTL, &q, func(ctx context.Context) (any, error) {
		return g.provider.Quote(ctx, sym)
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// History returns up to days daily candles, oldest first. Zero days
// selects DefaultHistoryDays.
func (g *Gateway) History(ctx context.Context, caller, symbol string, days int) ([]market.Candle, error) {
	sym, err := market.NormalizeSymbol(symbol)
	if err != nil {
		return nil, err
	}
	if days == 0 {
		days = DefaultHistoryDays
	}
	if days < 1 || days > MaxHistoryDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", domain.ErrValidation, MaxHistoryDays)
	}
	if err := g.allow(ctx, caller); err != nil {
		return nil, err
	}
	var candles []market.Candle
	key := "history:" + sym + ":" + strconv.Itoa(days)
	err = g.readThrough(ctx, key, g.cfg.HistoryTTL, &candles, func(ctx context.Context) (any, error) {
		raw, err := g.provider.History(ctx, sym, days)
		if err != nil {
			return nil, err
		}
		return market.NormalizeHistory(raw, days), nil
	})
	if err != nil {
		return nil, err
	}
	return candles, nil
}

// Search looks up symbols matching query.
func (g *Gateway) Search(ctx context.Context, caller, query string) ([]market.Match, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrValidation)
	}
	if err := g.allow(ctx, caller); err != nil {
		return nil, err
	}
	var matches []market.Match
	err := g.readThrough(ctx, "search:"+strings.ToLower(q), g.cfg.SearchTTL, &matches, func(ctx context.Context) (any, error) {
		return g.provider.Search(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	if matches == nil {
		matches = []market.Match{}
	}
	return matches, nil
}

// allow fails open when the counter backend is unreachable.
func (g *Gateway) allow(ctx context.Context, caller string) error {
	if g.limiter == nil {
		return nil
	}
	ok, err := g.limiter.Allow(ctx, caller)
	if err != nil {
		g.logger.Warn("Rate limit check failed", "caller", caller, "error", err)
		return nil
	}
	if !ok {
		g.logger.Info("Market data rate limit exceeded", "caller", caller)
		return domain.ErrRateLimited
	}
	return nil
}

// readThrough decodes the cached value for key into out, or calls fetch
// once across concurrent callers and caches the JSON-encoded result. The
// shared fetch outlives any single caller's context, bounded by the provider
// timeout; a caller whose context ends stops waiting and gets ctx.Err().
func (g *Gateway) readThrough(
	ctx context.Context,
	key string,
	ttl time.Duration,
	out any,
	fetch func(context.Context) (any, error),
) error {
	if raw, ok := g.get(ctx, key); ok {
		if err := json.Unmarshal(raw, out); err == nil {
			return nil
		}
		g.logger.Warn("Discarding undecodable cache entry", "key", key)
	}

	ch := g.inflight.DoChan(key, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.fetchTimeout())
		defer cancel()

		start := time.Now()
		val, err := fetch(fctx)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		if err := g.store.Set(fctx, key, raw, ttl); err != nil {
			g.logger.Warn("Cache write failed", "key", key, "error", err)
		}
		g.logger.Debug("Fetched from provider", "key", key, "took", time.Since(start))
		return raw, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return ctx.Err()
	}
	if res.Err != nil {
		return g.upstreamError(key, res.Err)
	}
	if res.Shared {
		g.logger.Debug("Shared in-flight fetch", "key", key)
	}
	return json.Unmarshal(res.Val.([]byte), out)
}

func (g *Gateway) fetchTimeout() time.Duration {
	if g.cfg.HTTPTimeout > 0 {
		return g.cfg.HTTPTimeout
	}
	return defaultFetchTimeout
}

func (g *Gateway) get(ctx context.Context, key string) ([]byte, bool) {
	raw, ok, err := g.store.Get(ctx, key)
	if err != nil {
		g.logger.Warn("Cache read failed", "key", key, "error", err)
		return nil, false
	}
	return raw, ok
}

func (g *Gateway) upstreamError(key string, err error) error {
	if errors.Is(err, provider.ErrSymbolNotFound) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, provider.ErrSymbolNotFound)
	}
	g.logger.Error("Market data provider failed", "key", key, "error", err)
	return domain.ErrMarketDataUnavailable
}
