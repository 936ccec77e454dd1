package provider

import (
	"fmt"
	"log/slog"

	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/provider"
)

// NewMarketData selects the market data provider named in cfg.
func NewMarketData(cfg *config.Market, logger *slog.Logger) (provider.MarketData, error) {
	switch cfg.Provider {
	case "", "fake":
		return NewFakeMarketProvider(), nil
	case "alphavantage":
		if cfg.ApiKey == "" {
			return nil, fmt.Errorf("MARKET_API_KEY is required for provider %q", cfg.Provider)
		}
		return NewAlphaVantageProvider(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown market provider %q", cfg.Provider)
	}
}
