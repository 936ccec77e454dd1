package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL" required:"true"`
	// Migrate applies pending SQL migrations at startup.
	Migrate bool `envconfig:"MIGRATE" default:"true"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Auth struct {
	Jwt           *Jwt          `envconfig:"JWT"`
	ResetTokenTTL time.Duration `envconfig:"RESET_TOKEN_TTL" default:"1h"`
}

// Redis is optional. An empty URL keeps the quote cache and counters in
// process memory.
type Redis struct {
	URL          string        `envconfig:"URL" default:""`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"fintrack:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
	CacheSweep  int           `envconfig:"CACHE_SWEEP" default:"10000"`
}

type Market struct {
	Provider    string        `envconfig:"PROVIDER" default:"fake"`
	ApiKey      string        `envconfig:"API_KEY"`
	ApiUrl      string        `envconfig:"API_URL" default:"https://www.alphavantage.co/query"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	QuoteTTL    time.Duration `envconfig:"QUOTE_TTL" default:"1m"`
	HistoryTTL  time.Duration `envconfig:"HISTORY_TTL" default:"1h"`
	SearchTTL   time.Duration `envconfig:"SEARCH_TTL" default:"24h"`
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"30"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[fintrack]"`
}

type Server struct {
	Host         string        `envconfig:"HOST" default:"0.0.0.0"`
	Port         int           `envconfig:"PORT" default:"3000"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"10s"`
}

type App struct {
	Env           string     `envconfig:"APP_ENV" default:"development"`
	PublicBaseURL string     `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:5173"`
	Server        *Server    `envconfig:"SERVER"`
	Log           *Log       `envconfig:"LOG"`
	DB            *DB        `envconfig:"DATABASE"`
	Auth          *Auth      `envconfig:"AUTH"`
	Redis         *Redis     `envconfig:"REDIS"`
	RateLimit     *RateLimit `envconfig:"RATE_LIMIT"`
	Market        *Market    `envconfig:"MARKET"`
}
