package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chargemap.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFileOverlaysValues(t *testing.T) {
	path := writeConfigFile(t, `
environment = "development"
log_level = "debug"
http_timeout = "3s"
listen_addr = ":7000"

[open_charge_map]
api_key = "file-key"
query_mode = "town"
town = "Chennai"
max_results = 20

[map]
title = "Chennai EV Tracker"

[views]
limit = 4
`)

	cfg := New()
	require.NoError(t, LoadFile(cfg, path))

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, zerolog.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, ":7000", cfg.ListenAddr)
	assert.Equal(t, "file-key", cfg.OCM.APIKey)
	assert.Equal(t, QueryByTown, cfg.OCM.QueryMode)
	assert.Equal(t, "Chennai", cfg.OCM.Town)
	assert.Equal(t, 20, cfg.OCM.MaxResults)
	assert.Equal(t, "Chennai EV Tracker", cfg.Map.Title)
	assert.Equal(t, 4, cfg.Views.Limit)

	// untouched keys keep their defaults
	assert.Equal(t, "IN", cfg.OCM.CountryCode)
	assert.Equal(t, 12, cfg.Map.Zoom)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, defaultViewSettleSeconds, cfg.Views.SettleTimeoutSeconds)
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{
			name:    "missing file",
			path:    func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") },
			wantErr: "decoding config file",
		},
		{
			name:    "malformed toml",
			path:    func(t *testing.T) string { return writeConfigFile(t, "listen_addr = ") },
			wantErr: "decoding config file",
		},
		{
			name:    "bad timeout",
			path:    func(t *testing.T) string { return writeConfigFile(t, `http_timeout = "soon"`) },
			wantErr: "parsing http_timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := LoadFile(New(), tt.path(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
