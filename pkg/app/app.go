package app

import (
	"log/slog"

	"github.com/amirasaad/fintrack/pkg/cache"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/provider"
	"github.com/amirasaad/fintrack/pkg/ratelimit"
	"github.com/amirasaad/fintrack/pkg/repository"
	authsvc "github.com/amirasaad/fintrack/pkg/service/auth"
	chatsvc "github.com/amirasaad/fintrack/pkg/service/chat"
	goalsvc "github.com/amirasaad/fintrack/pkg/service/goal"
	investmentsvc "github.com/amirasaad/fintrack/pkg/service/investment"
	"github.com/amirasaad/fintrack/pkg/service/quote"
	subscriptionsvc "github.com/amirasaad/fintrack/pkg/service/subscription"
	transactionsvc "github.com/amirasaad/fintrack/pkg/service/transaction"
	usersvc "github.com/amirasaad/fintrack/pkg/service/user"
	walletsvc "github.com/amirasaad/fintrack/pkg/service/wallet"
)

// Deps contains the infrastructure the services are built from
type Deps struct {
	Uow        repository.UnitOfWork
	Cache      cache.Backend
	MarketData provider.MarketData
	Notifier   authsvc.ResetNotifier
	Logger     *slog.Logger
}

type App struct {
	Deps                *Deps
	Config              *config.App
	AuthService         *authsvc.Service
	UserService         *usersvc.Service
	WalletService       *walletsvc.Service
	GoalService         *goalsvc.Service
	TransactionService  *transactionsvc.Service
	SubscriptionService *subscriptionsvc.Service
	InvestmentService   *investmentsvc.Service
	ChatService         *chatsvc.Service
	QuoteGateway        *quote.Gateway
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	logger := deps.Logger

	limiter := ratelimit.NewFixedWindow(
		deps.Cache,
		"ratelimit:market:",
		cfg.Market.MaxRequests,
		cfg.Market.Window,
	)
	app.QuoteGateway = quote.New(deps.MarketData, deps.Cache, limiter, cfg.Market, logger)

	app.AuthService = authsvc.New(deps.Uow, cfg.Auth, cfg.PublicBaseURL, deps.Notifier, logger)
	app.UserService = usersvc.New(deps.Uow, logger)
	app.WalletService = walletsvc.New(deps.Uow, logger)
	app.GoalService = goalsvc.New(deps.Uow, cfg.PublicBaseURL, logger)
	app.TransactionService = transactionsvc.New(deps.Uow, logger)
	app.SubscriptionService = subscriptionsvc.New(deps.Uow, logger)
	app.InvestmentService = investmentsvc.New(deps.Uow, app.QuoteGateway, logger)
	app.ChatService = chatsvc.New(deps.Uow, logger)
	return app
}
