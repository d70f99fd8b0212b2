package config

import (
	"fmt"

	"github.com/caarlos0/env/v6"
)

// Config holds all client configuration, read from the environment
type Config struct {
	APIBaseURL     string `env:"API_BASE_URL" envDefault:"http://localhost:5050"`
	HTTPTimeoutSec int    `env:"HTTP_TIMEOUT_SECONDS" envDefault:"10"`
	StateFile      string `env:"STATE_FILE" envDefault:".bidbazaar/state.json"`
	DebounceMillis int    `env:"FILTER_DEBOUNCE_MS" envDefault:"500"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`

	// OfflineFallback substitutes the bundled sample auctions when the
	// listing endpoint fails or returns nothing, so the UI is never empty
	// during development or a backend outage.
	OfflineFallback bool `env:"OFFLINE_FALLBACK" envDefault:"true"`

	// StubPort is where the local development backend listens.
	StubPort string `env:"PORT" envDefault:"5050"`
}

func NewConfig() (*Config, error) {
	config := &Config{}

	err := env.Parse(config)
	if err != nil {
		err = fmt.Errorf("config.NewConfig: %w", err)
	}
	return config, err
}
