package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// ViewConfig bounds the set of mounted map views held by the web server.
type ViewConfig struct {
	// Limit is the most views kept at once; the least recently used is torn
	// down when a new one is mounted past the limit.
	Limit int `toml:"limit"`
	// TTLSeconds is how long a view lives after it is mounted.
	TTLSeconds int `toml:"ttl_seconds"`
	// SettleTimeoutSeconds caps how long one-shot callers (lambda, CLI)
	// wait for a view's fetch to settle.
	SettleTimeoutSeconds int `toml:"settle_timeout_seconds"`
}

const (
	defaultViewLimit         = 256
	defaultViewTTL           = 10 * time.Minute
	defaultViewSettleSeconds = 15
)

func defaultViewConfig() ViewConfig {
	return ViewConfig{
		Limit:                defaultViewLimit,
		TTLSeconds:           int(defaultViewTTL.Seconds()),
		SettleTimeoutSeconds: defaultViewSettleSeconds,
	}
}

// GetViewConfig returns the view configuration from environment variables or defaults
func GetViewConfig() ViewConfig {
	cfg := ViewConfig{
		Limit:                getEnvInt("VIEW_LIMIT", defaultViewLimit),
		TTLSeconds:           int(getDurationEnvOrDefault("VIEW_TTL", defaultViewTTL).Seconds()),
		SettleTimeoutSeconds: getEnvInt("VIEW_SETTLE_TIMEOUT_SECONDS", defaultViewSettleSeconds),
	}

	log.Debug().
		Int("Limit", cfg.Limit).
		Int("TTLSeconds", cfg.TTLSeconds).
		Int("SettleTimeoutSeconds", cfg.SettleTimeoutSeconds).
		Msg("View configuration loaded")

	return cfg
}

func (c ViewConfig) GetTTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func (c ViewConfig) GetSettleTimeout() time.Duration {
	return time.Duration(c.SettleTimeoutSeconds) * time.Second
}

func (c ViewConfig) validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("view limit must be positive, got %d", c.Limit)
	}
	if c.TTLSeconds <= 0 {
		return fmt.Errorf("view ttl must be positive, got %ds", c.TTLSeconds)
	}
	if c.SettleTimeoutSeconds <= 0 {
		return fmt.Errorf("view settle timeout must be positive, got %ds", c.SettleTimeoutSeconds)
	}
	return nil
}
