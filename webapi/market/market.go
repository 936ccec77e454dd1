package market

import (
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain/market"
	"github.com/amirasaad/fintrack/pkg/middleware"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	"github.com/amirasaad/fintrack/pkg/service/quote"
	"github.com/amirasaad/fintrack/webapi/common"
	"github.com/gofiber/fiber/v2"
)

type QuoteDTO struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Currency      string  `json:"currency"`
}

type CandleDTO struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

func toQuoteDTO(q *market.Quote) QuoteDTO {
	return QuoteDTO{
		Symbol:        q.Symbol,
		Name:          q.Name,
		Price:         common.Amount(q.Price),
		Change:        common.Amount(q.Change),
		ChangePercent: common.Amount(q.ChangePercent),
		Currency:      q.Currency,
	}
}

func toCandleDTOs(cs []market.Candle) []CandleDTO {
	out := make([]CandleDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, CandleDTO{
			Date:   c.Date,
			Open:   common.Amount(c.Open),
			High:   common.Amount(c.High),
			Low:    common.Amount(c.Low),
			Close:  common.Amount(c.Close),
			Volume: c.Volume,
		})
	}
	return out
}

// Routes registers the market data proxy. Calls are rate limited per user.
func Routes(app *fiber.App, gw *quote.Gateway, authSvc *authsvc.Service, cfg *config.App) {
	g := app.Group("/market", middleware.JwtProtected(cfg.Auth.Jwt))
	g.Get("/quote/:symbol", GetQuote(gw, authSvc))
	g.Get("/history/:symbol", GetHistory(gw, authSvc))
	g.Get("/search", Search(gw, authSvc))
}

// GetQuote
// @Summary Latest quote
// @Tags market
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Success 200 {object} QuoteDTO
// @Failure 400 {object} common.ErrorResponse
// @Failure 404 {object} common.ErrorResponse
// @Failure 429 {object} common.ErrorResponse
// @Failure 502 {object} common.ErrorResponse
// @Router /market/quote/{symbol} [get]
// @Security BearerAuth
func GetQuote(gw *quote.Gateway, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		q, err := gw.Quote(c.UserContext(), userID.String(), c.Params("symbol"))
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(toQuoteDTO(q))
	}
}

// GetHistory returns daily candles, oldest first.
// @Summary Daily price history
// @Tags market
// @Produce json
// @Param symbol path string true "Ticker symbol"
// @Param days query int false "Number of trading days (1-365, default 30)"
// @Success 200 {array} CandleDTO
// @Failure 400 {object} common.ErrorResponse
// @Failure 429 {object} common.ErrorResponse
// @Failure 502 {object} common.ErrorResponse
// @Router /market/history/{symbol} [get]
// @Security BearerAuth
func GetHistory(gw *quote.Gateway, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		days := c.QueryInt("days", quote.DefaultHistoryDays)
		candles, err := gw.History(c.UserContext(), userID.String(), c.Params("symbol"), days)
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(toCandleDTOs(candles))
	}
}

// Search
// @Summary Symbol search
// @Tags market
// @Produce json
// @Param q query string true "Keywords"
// @Success 200 {array} market.Match
// @Failure 400 {object} common.ErrorResponse
// @Failure 429 {object} common.ErrorResponse
// @Failure 502 {object} common.ErrorResponse
// @Router /market/search [get]
// @Security BearerAuth
func Search(gw *quote.Gateway, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.HandleError(c, err)
		}
		matches, err := gw.Search(c.UserContext(), userID.String(), c.Query("q"))
		if err != nil {
			return common.HandleError(c, err)
		}
		return c.JSON(matches)
	}
}
