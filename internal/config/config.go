// Package config defines the configuration for the fairweather engine and
// its CLI. Configuration is loaded once at process start and is immutable
// thereafter, following 12-Factor principles: values come from the OS
// environment, optionally seeded from a dotenv file.
//
// A missing required value or invalid format fails the load immediately
// (fail fast).
package config

import (
	"time"

	"fairweather/internal/types"
)

// SecretString is an alias for types.SecretString, used so secrets never
// leak through logs or serialized config dumps.
type SecretString = types.SecretString

// Config is the top-level configuration struct. Sub-components receive only
// the subsets they need.
type Config struct {
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	Provider ProviderConfig
	Search   SearchConfig
}

// ProviderConfig holds weather provider credentials and HTTP tuning.
type ProviderConfig struct {
	APIKey    SecretString  `envconfig:"OPENWEATHER_API_KEY" validate:"required"`
	BaseURL   string        `envconfig:"OPENWEATHER_BASE_URL" default:"https://api.openweathermap.org/data/2.5" validate:"url"`
	UserAgent string        `envconfig:"PROVIDER_USER_AGENT" default:"fairweather/1.0"`
	Timeout   time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"10s"`
}

// SearchConfig holds alternative-date search tuning parameters.
type SearchConfig struct {
	// Concurrency bounds simultaneous provider fetches; keep it modest to
	// respect upstream rate limits.
	Concurrency   int           `envconfig:"SEARCH_CONCURRENCY" default:"4" validate:"min=1,max=32"`
	FetchTimeout  time.Duration `envconfig:"SEARCH_FETCH_TIMEOUT" default:"5s"`
	SearchTimeout time.Duration `envconfig:"SEARCH_TIMEOUT" default:"30s"`
	MaxResults    int           `envconfig:"SEARCH_MAX_RESULTS" default:"5" validate:"min=1,max=50"`
	HorizonDays   int           `envconfig:"FORECAST_HORIZON_DAYS" default:"5" validate:"min=1,max=16"`
}
