package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds everything resolved once at startup. The base URL is immutable
// for the life of the process.
type Config struct {
	APIBaseURL string `env:"API_BASE_URL, default=http://localhost:8080/api"`
	Env        string `env:"ENV,          default=development"`
	LogLevel   string `env:"LOG_LEVEL,    default=info"`

	// SessionFile is where the session survives restarts. Defaults to
	// $HOME/.pharmacy-client/session.json when unset.
	SessionFile string `env:"SESSION_FILE"`

	// RequestTimeout bounds every backend call. The browser original had no
	// timeout at all; a hung request left the page suspended forever.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, default=15s"`

	// ExpiryThresholdDays is the near-expiry window for the expiry report.
	ExpiryThresholdDays int `env:"EXPIRY_THRESHOLD_DAYS, default=30"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if cfg.SessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			panic(fmt.Sprintf("config: cannot resolve home directory: %v", err))
		}
		cfg.SessionFile = filepath.Join(home, ".pharmacy-client", "session.json")
	}
	return &cfg
}
