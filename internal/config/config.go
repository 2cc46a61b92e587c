// Package config loads the addresswatch settings from ADDRESSWATCH_*
// environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/gabapcia/addresswatch/internal/pkg/validator"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "addresswatch"

type (
	Config struct {
		Log
		Backend
		Panel
		Redis
		Telemetry
	}

	Log struct {
		Level string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
		// File receives log lines while the terminal UI owns stdout.
		File string `envconfig:"LOG_FILE" default:"addresswatch.log"`
	}

	Backend struct {
		Host           string        `envconfig:"HOST" default:"mempool.space" validate:"required,hostname_port|hostname"`
		Secure         bool          `envconfig:"SECURE" default:"true"`
		Network        string        `envconfig:"NETWORK" default:"mainnet" validate:"oneof=mainnet testnet signet regtest"`
		HTTPTimeout    time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s" validate:"gt=0"`
		HTTPRetries    int           `envconfig:"HTTP_RETRIES" default:"2" validate:"gte=0"`
		ReconnectDelay time.Duration `envconfig:"RECONNECT_DELAY" default:"30s" validate:"gt=0"`
		SyncAttempts   uint          `envconfig:"SYNC_ATTEMPTS" default:"3" validate:"gte=1"`
	}

	Panel struct {
		FlashDuration time.Duration `envconfig:"FLASH_DURATION" default:"1s" validate:"gt=0"`
	}

	// Redis enables the address history cache when Addr is set.
	Redis struct {
		Addr     string `envconfig:"REDIS_ADDR"`
		Username string `envconfig:"REDIS_USERNAME"`
		Password string `envconfig:"REDIS_PASSWORD"`
		DB       int    `envconfig:"REDIS_DB" default:"0" validate:"gte=0"`

		HistoryTTL time.Duration `envconfig:"REDIS_HISTORY_TTL" default:"720h" validate:"gt=0"`
	}

	Telemetry struct {
		Enabled     bool   `envconfig:"TELEMETRY_ENABLED" default:"false"`
		ServiceName string `envconfig:"TELEMETRY_SERVICE_NAME" default:"addresswatch" validate:"required"`
	}
)

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	return validator.Validate(c)
}

func scheme(secure bool, plain, tls string) string {
	if secure {
		return tls
	}
	return plain
}

// APIURL is the root of the backend's REST API.
func (b Backend) APIURL() string {
	return fmt.Sprintf("%s://%s/api", scheme(b.Secure, "http", "https"), b.Host)
}

// WebsocketURL is the backend's realtime endpoint.
func (b Backend) WebsocketURL() string {
	return fmt.Sprintf("%s://%s/api/v1/ws", scheme(b.Secure, "ws", "wss"), b.Host)
}

// CacheEnabled reports whether a Redis address was configured.
func (r Redis) CacheEnabled() bool {
	return r.Addr != ""
}
