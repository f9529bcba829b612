package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"
)

// fileConfig mirrors the TOML layout. Keys left out of the file keep the
// value already present in the Config.
type fileConfig struct {
	Environment string        `toml:"environment"`
	LogLevel    string        `toml:"log_level"`
	HTTPTimeout string        `toml:"http_timeout"`
	ListenAddr  string        `toml:"listen_addr"`
	MetricsAddr string        `toml:"metrics_addr"`
	OCM         OpenChargeMap `toml:"open_charge_map"`
	Map         MapSettings   `toml:"map"`
	Views       ViewConfig    `toml:"views"`
}

// LoadFile overlays the TOML file at path on top of cfg.
func LoadFile(cfg *Config, path string) error {
	file := fileConfig{
		OCM:   cfg.OCM,
		Map:   cfg.Map,
		Views: cfg.Views,
	}

	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return fmt.Errorf("decoding config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		log.Warn().Str("path", path).Interface("keys", undecoded).Msg("Ignoring unknown config keys")
	}

	opts := []Option{
		WithOpenChargeMap(file.OCM),
		WithViews(file.Views),
	}
	if file.Environment != "" {
		opts = append(opts, WithEnvironment(file.Environment))
	}
	if file.LogLevel != "" {
		opts = append(opts, WithLogLevel(file.LogLevel))
	}
	if file.HTTPTimeout != "" {
		timeout, err := time.ParseDuration(file.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("parsing http_timeout: %w", err)
		}
		opts = append(opts, WithHTTPTimeout(timeout))
	}
	if file.ListenAddr != "" {
		opts = append(opts, WithListenAddr(file.ListenAddr))
	}
	if file.MetricsAddr != "" {
		opts = append(opts, WithMetricsAddr(file.MetricsAddr))
	}

	for _, opt := range opts {
		opt(cfg)
	}
	cfg.Map = file.Map

	log.Debug().Str("path", path).Msg("Config file loaded")
	return nil
}
