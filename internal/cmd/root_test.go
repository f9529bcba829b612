package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/bbernstein/chargemap/backend-go/internal/api"
	"github.com/bbernstein/chargemap/backend-go/internal/config"
	"github.com/bbernstein/chargemap/backend-go/internal/models"
	"github.com/bbernstein/chargemap/backend-go/internal/station"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const poiBody = `[
	{"ID": 1, "AddressInfo": {"Title": "UB City", "AddressLine1": "Vittal Mallya Rd", "Latitude": 12.97, "Longitude": 77.59},
	 "StatusType": {"ID": 50, "Title": "Operational"}, "Connections": [{"ID": 10}, {"ID": 11}]},
	{"ID": 2, "AddressInfo": {"Title": "Forum", "AddressLine1": "Hosur Rd", "Latitude": 12.93, "Longitude": 77.61}}
]`

func newOCMServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/poi/", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(poiBody))
	}))
	t.Cleanup(server.Close)
	return server
}

func execute(t *testing.T, app *ChargemapApp, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd(app)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFetchCommand(t *testing.T) {
	server := newOCMServer(t)
	t.Setenv("OCM_BASE_URL", server.URL)
	t.Setenv("OCM_API_KEY", "test-key")
	t.Setenv("LOG_LEVEL", "error")

	t.Run("markers", func(t *testing.T) {
		out, err := execute(t, &ChargemapApp{NewFetcher: openChargeMapFetcher}, "fetch")
		require.NoError(t, err)

		var resp api.MarkersResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.False(t, resp.Loading)
		require.Len(t, resp.Markers, 2)
		assert.Equal(t, models.IconAffirmative, resp.Markers[0].Icon)
		assert.Equal(t, 2, resp.Markers[0].Popup.Connectors)
		assert.Equal(t, models.IconCautionary, resp.Markers[1].Icon)
		assert.Equal(t, "Unknown", resp.Markers[1].Popup.Status)
		assert.Equal(t, 0, resp.Markers[1].Popup.Connectors)
	})

	t.Run("geojson", func(t *testing.T) {
		out, err := execute(t, &ChargemapApp{NewFetcher: openChargeMapFetcher}, "fetch", "--geojson")
		require.NoError(t, err)

		var fc struct {
			Type     string            `json:"type"`
			Features []json.RawMessage `json:"features"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &fc))
		assert.Equal(t, "FeatureCollection", fc.Type)
		assert.Len(t, fc.Features, 2)
	})
}

func TestFetchCommandUpstreamFailure(t *testing.T) {
	t.Setenv("OCM_API_KEY", "test-key")
	t.Setenv("LOG_LEVEL", "error")

	app := &ChargemapApp{
		NewFetcher: func(*config.Config, station.Observer) (models.StationFetcher, error) {
			return failingFetcher{}, nil
		},
	}
	out, err := execute(t, app, "fetch")
	require.NoError(t, err)

	var resp api.MarkersResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.False(t, resp.Loading)
	assert.Empty(t, resp.Markers)
}

func TestFetchCommandSettleTimeout(t *testing.T) {
	t.Setenv("OCM_API_KEY", "test-key")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("VIEW_SETTLE_TIMEOUT_SECONDS", "1")

	app := &ChargemapApp{
		NewFetcher: func(*config.Config, station.Observer) (models.StationFetcher, error) {
			return blockingFetcher{}, nil
		},
	}
	out, err := execute(t, app, "fetch")
	require.NoError(t, err)

	var resp api.MarkersResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.Loading)
	assert.NotNil(t, resp.Markers)
	assert.Empty(t, resp.Markers)
	assert.Nil(t, resp.Center)
}

// blockingFetcher never returns until its context ends.
type blockingFetcher struct{}

func (blockingFetcher) FetchStations(ctx context.Context) ([]models.Station, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type failingFetcher struct{}

func (failingFetcher) FetchStations(context.Context) ([]models.Station, error) {
	return nil, errors.New("connection refused")
}

func TestConfigErrors(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{
			name: "missing api key",
			env:  map[string]string{"OCM_API_KEY": ""},
			args: []string{"fetch"},
		},
		{
			name: "missing config file",
			env:  map[string]string{"OCM_API_KEY": "test-key"},
			args: []string{"--config", filepath.Join(os.TempDir(), "chargemap-does-not-exist.toml"), "fetch"},
		},
		{
			name: "serve validates before listening",
			env:  map[string]string{"OCM_API_KEY": "", "LISTEN_ADDR": "127.0.0.1:0"},
			args: []string{"serve"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := execute(t, &ChargemapApp{NewFetcher: openChargeMapFetcher}, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestConfigFileOverlay(t *testing.T) {
	server := newOCMServer(t)
	t.Setenv("OCM_API_KEY", "")
	t.Setenv("LOG_LEVEL", "error")

	path := filepath.Join(t.TempDir(), "chargemap.toml")
	body := "[open_charge_map]\nbase_url = \"" + server.URL + "\"\napi_key = \"test-key\"\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	out, err := execute(t, &ChargemapApp{NewFetcher: openChargeMapFetcher}, "--config", path, "fetch")
	require.NoError(t, err)
	assert.Contains(t, out, "UB City")
}
