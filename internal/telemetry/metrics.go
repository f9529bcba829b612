package telemetry

import (
	"time"

	"github.com/bbernstein/chargemap/backend-go/internal/station"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	FetchSeconds     *prometheus.HistogramVec
	FetchErrorsTotal *prometheus.CounterVec
	StationsFetched  prometheus.Histogram
	ViewsMounted     prometheus.Counter
	ViewsActive      prometheus.Gauge
}

var _ station.Observer = (*Metrics)(nil)

func NewMetrics(registry prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		FetchSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chargemap_ocm_fetch_seconds",
				Help:    "Duration of Open Charge Map POI requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		FetchErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chargemap_ocm_fetch_errors_total",
				Help: "Failed Open Charge Map POI requests by failure kind",
			},
			[]string{"kind"},
		),
		StationsFetched: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chargemap_ocm_stations_per_fetch",
				Help:    "Number of stations returned by successful fetches",
				Buckets: []float64{0, 1, 5, 10, 20, 50, 100, 250},
			},
		),
		ViewsMounted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "chargemap_views_mounted_total",
				Help: "Map views mounted since start",
			},
		),
		ViewsActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "chargemap_views_active",
				Help: "Map views currently held by the server",
			},
		),
	}

	registry.MustRegister(
		metrics.FetchSeconds,
		metrics.FetchErrorsTotal,
		metrics.StationsFetched,
		metrics.ViewsMounted,
		metrics.ViewsActive,
	)

	return metrics
}

func (m *Metrics) ObserveFetch(outcome station.Outcome, kind station.FailureKind, stations int, elapsed time.Duration) {
	m.FetchSeconds.WithLabelValues(string(outcome)).Observe(elapsed.Seconds())
	switch outcome {
	case station.OutcomeSuccess:
		m.StationsFetched.Observe(float64(stations))
	case station.OutcomeFailure:
		m.FetchErrorsTotal.WithLabelValues(string(kind)).Inc()
	}
}

func (m *Metrics) ViewMounted() {
	m.ViewsMounted.Inc()
	m.ViewsActive.Inc()
}

func (m *Metrics) ViewReleased() {
	m.ViewsActive.Dec()
}
