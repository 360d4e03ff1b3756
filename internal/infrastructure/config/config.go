package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all console configuration.
type Config struct {
	// Ledger backend
	BackendURL string `env:"BACKEND_URL" envDefault:"http://localhost:8000"`
	// Zero means no client-side timeout on backend calls.
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"0s"`
	// How long startup waits for the backend health endpoint.
	BackendReadyWait time.Duration `env:"BACKEND_READY_WAIT" envDefault:"30s"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
