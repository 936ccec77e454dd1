// Package handler is the serverless entry point. The platform calls Handler
// for every request; the fiber app is built on the first one.
package handler

import (
	"net/http"
	"sync"

	"github.com/amirasaad/fintrack/infra/initializer"
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/webapi"
	log "github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

var (
	once    sync.Once
	serveFn http.HandlerFunc
)

// Handler is the main entry point of the application.
func Handler(w http.ResponseWriter, r *http.Request) {
	// This is needed to set the proper request path in `*fiber.Ctx`
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			log.Fatal("failed to load application configuration", "error", err)
		}
		deps, err := initializer.InitializeDependencies(cfg)
		if err != nil {
			log.Fatal("failed to initialize dependencies", "error", err)
		}
		serveFn = newHandler(app.New(deps, cfg))
	})
	serveFn.ServeHTTP(w, r)
}

func newHandler(a *app.App) http.HandlerFunc {
	return adaptor.FiberApp(webapi.SetupApp(a))
}
