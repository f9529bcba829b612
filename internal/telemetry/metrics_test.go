package telemetry

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bbernstein/chargemap/backend-go/internal/station"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFetch(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.ObserveFetch(station.OutcomeSuccess, "", 12, 120*time.Millisecond)
	metrics.ObserveFetch(station.OutcomeFailure, station.FailureTransport, 0, time.Second)
	metrics.ObserveFetch(station.OutcomeFailure, station.FailureDecode, 0, time.Second)
	metrics.ObserveFetch(station.OutcomeFailure, station.FailureDecode, 0, time.Second)
	metrics.ObserveFetch(station.OutcomeCancelled, "", 0, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FetchErrorsTotal.WithLabelValues("transport")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.FetchErrorsTotal.WithLabelValues("decode")))
	assert.Equal(t, 3, testutil.CollectAndCount(metrics.FetchSeconds))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.StationsFetched))
}

func TestViewGauge(t *testing.T) {
	metrics := NewMetrics(prometheus.NewRegistry())

	metrics.ViewMounted()
	metrics.ViewMounted()
	metrics.ViewReleased()

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.ViewsMounted))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ViewsActive))
}

func TestServerExposesMetrics(t *testing.T) {
	server := NewServer("127.0.0.1:0")
	metrics := NewMetrics(server.Registry())
	metrics.ViewMounted()

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "chargemap_views_active 1")
	assert.Contains(t, string(body), `chargemap_build_info{git_commit="unknown",version="dev"} 1`)
}
