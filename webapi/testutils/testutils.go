package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	infracache "github.com/amirasaad/fintrack/infra/cache"
	infraprovider "github.com/amirasaad/fintrack/infra/provider"
	infrarepo "github.com/amirasaad/fintrack/infra/repository"
	dbtest "github.com/amirasaad/fintrack/internal/testutils"
	"github.com/amirasaad/fintrack/pkg/app"
	"github.com/amirasaad/fintrack/pkg/config"
	"github.com/amirasaad/fintrack/pkg/domain/user"
	"github.com/amirasaad/fintrack/webapi"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

const TestPassword = "password123"

// ResetOutbox records the reset links the auth service hands out.
type ResetOutbox struct {
	mu    sync.Mutex
	links map[string]string
}

func (o *ResetOutbox) SendPasswordReset(_ context.Context, u *user.User, link string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.links == nil {
		o.links = make(map[string]string)
	}
	o.links[u.Email] = link
	return nil
}

// Link returns the last reset link sent to email.
func (o *ResetOutbox) Link(email string) string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.links[email]
}

// TestUser is a registered account and its session token.
type TestUser struct {
	ID    uuid.UUID
	Email string
	Name  string
	Token string
}

// E2ETestSuite runs the full HTTP stack against a private in-memory
// database and the deterministic market provider. Every test gets a fresh
// database.
type E2ETestSuite struct {
	suite.Suite
	App    *app.App
	Fiber  *fiber.App
	DB     *gorm.DB
	Cfg    *config.App
	Outbox *ResetOutbox
}

// TestConfig is the configuration used by the suite. Limits are high
// enough that ordinary tests never trip them.
func TestConfig() *config.App {
	return &config.App{
		Env:           "test",
		PublicBaseURL: "http://fintrack.test",
		Server:        &config.Server{ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second},
		Log:           &config.Log{Level: 8, Format: "text"},
		DB:            &config.DB{},
		Auth: &config.Auth{
			Jwt:           &config.Jwt{Secret: "e2e-secret", Expiry: time.Hour},
			ResetTokenTTL: time.Hour,
		},
		Redis:     &config.Redis{},
		RateLimit: &config.RateLimit{MaxRequests: 10000, Window: time.Minute},
		Market: &config.Market{
			Provider:    "fake",
			QuoteTTL:    time.Minute,
			HistoryTTL:  time.Hour,
			SearchTTL:   time.Hour,
			MaxRequests: 1000,
			Window:      time.Minute,
		},
	}
}

func (s *E2ETestSuite) SetupTest() {
	s.Setup(TestConfig())
}

// Setup builds the app around cfg.
func (s *E2ETestSuite) Setup(cfg *config.App) {
	s.Cfg = cfg
	s.DB = dbtest.NewTestDB(s.T())
	s.Outbox = &ResetOutbox{}
	logger := dbtest.DiscardLogger()
	deps := &app.Deps{
		Uow:        infrarepo.NewUoW(s.DB),
		Cache:      infracache.NewMemoryCache(),
		MarketData: infraprovider.NewFakeMarketProvider(),
		Notifier:   s.Outbox,
		Logger:     logger,
	}
	s.App = app.New(deps, cfg)
	s.Fiber = webapi.SetupApp(s.App)
}

// MakeRequest is a helper for making HTTP requests in tests
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Fiber.Test(req, 10000)
	s.Require().NoError(err)
	return resp
}

// Do sends a request and decodes the JSON response into out when out is
// not nil. It returns the status code.
func (s *E2ETestSuite) Do(method, path, body, token string, out any) int {
	resp := s.MakeRequest(method, path, body, token)
	defer resp.Body.Close() //nolint: errcheck
	if out != nil {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out), "decode %s %s", method, path)
	}
	return resp.StatusCode
}

// ErrorOf sends a request and returns the status and the "error" message.
func (s *E2ETestSuite) ErrorOf(method, path, body, token string) (int, string) {
	var e struct {
		Error string `json:"error"`
	}
	status := s.Do(method, path, body, token, &e)
	return status, e.Error
}

// Register creates a fresh account through the API.
func (s *E2ETestSuite) Register(name string) TestUser {
	email := fmt.Sprintf("%s_%s@example.com", name, uuid.NewString()[:8])
	body := fmt.Sprintf(`{"email":%q,"password":%q,"name":%q}`, email, TestPassword, name)
	var out struct {
		Token string `json:"token"`
		User  struct {
			ID uuid.UUID `json:"id"`
		} `json:"user"`
	}
	status := s.Do(http.MethodPost, "/auth/register", body, "", &out)
	s.Require().Equal(fiber.StatusCreated, status, "register %s", email)
	s.Require().NotEmpty(out.Token)
	return TestUser{ID: out.User.ID, Email: email, Name: name, Token: out.Token}
}

// CreateWallet adds a wallet with the given balance and returns its id.
func (s *E2ETestSuite) CreateWallet(u TestUser, name, balance string) uuid.UUID {
	var out struct {
		ID uuid.UUID `json:"id"`
	}
	body := fmt.Sprintf(`{"name":%q,"type":"bank","balance":%s}`, name, balance)
	status := s.Do(http.MethodPost, "/wallets", body, u.Token, &out)
	s.Require().Equal(fiber.StatusCreated, status)
	return out.ID
}

// CreateGoal adds a savings goal and returns its id.
func (s *E2ETestSuite) CreateGoal(u TestUser, name, target string) uuid.UUID {
	var out struct {
		ID uuid.UUID `json:"id"`
	}
	body := fmt.Sprintf(`{"name":%q,"target_amount":%s}`, name, target)
	status := s.Do(http.MethodPost, "/goals", body, u.Token, &out)
	s.Require().Equal(fiber.StatusCreated, status)
	return out.ID
}

// WalletBalance reads a wallet's balance through the API.
func (s *E2ETestSuite) WalletBalance(u TestUser, id uuid.UUID) float64 {
	var out struct {
		Balance float64 `json:"balance"`
	}
	status := s.Do(http.MethodGet, "/wallets/"+id.String(), "", u.Token, &out)
	s.Require().Equal(fiber.StatusOK, status)
	return out.Balance
}
