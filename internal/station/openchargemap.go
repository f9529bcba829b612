package station

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/bbernstein/chargemap/backend-go/internal/config"
	"github.com/bbernstein/chargemap/backend-go/internal/models"
	"github.com/bbernstein/chargemap/backend-go/pkg/http/client"
	"github.com/rs/zerolog/log"
)

const poiPath = "/v3/poi/"

// Outcome labels a finished fetch for observers.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeFailure   Outcome = "failure"
	OutcomeCancelled Outcome = "cancelled"
)

// Observer is told about every fetch once it finishes.
type Observer interface {
	ObserveFetch(outcome Outcome, kind FailureKind, stations int, elapsed time.Duration)
}

// FinderOption configures an OpenChargeMapFinder.
type FinderOption func(*OpenChargeMapFinder)

// WithObserver attaches a fetch observer. A nil observer is ignored.
func WithObserver(observer Observer) FinderOption {
	return func(f *OpenChargeMapFinder) {
		f.observer = observer
	}
}

// OpenChargeMapFinder looks up POIs for a fixed area. Every call is exactly
// one GET; results are not cached.
type OpenChargeMapFinder struct {
	httpClient client.Interface
	query      url.Values
	observer   Observer
}

var _ models.StationFetcher = (*OpenChargeMapFinder)(nil)

func NewOpenChargeMapFinder(httpClient client.Interface, settings config.OpenChargeMap, opts ...FinderOption) (*OpenChargeMapFinder, error) {
	if httpClient == nil {
		return nil, fmt.Errorf("http client is required")
	}
	query, err := BuildQuery(settings)
	if err != nil {
		return nil, fmt.Errorf("building poi query: %w", err)
	}

	finder := &OpenChargeMapFinder{
		httpClient: httpClient,
		query:      query,
	}
	for _, opt := range opts {
		opt(finder)
	}
	return finder, nil
}

// NewFetcherFromConfig builds the HTTP client and finder for cfg.
func NewFetcherFromConfig(cfg *config.Config, observer Observer) (*OpenChargeMapFinder, error) {
	httpClient := client.New(client.Options{
		BaseURL: cfg.OCM.BaseURL,
		Timeout: cfg.HTTPTimeout,
	})
	return NewOpenChargeMapFinder(httpClient, cfg.OCM, WithObserver(observer))
}

// BuildQuery renders the POI query string for the configured mode.
func BuildQuery(settings config.OpenChargeMap) (url.Values, error) {
	query := url.Values{}
	query.Set("output", "json")

	switch settings.QueryMode {
	case config.QueryByCoordinate, "":
		query.Set("latitude", formatFloat(settings.Latitude))
		query.Set("longitude", formatFloat(settings.Longitude))
		query.Set("distance", formatFloat(settings.DistanceKM))
		query.Set("distanceunit", "KM")
	case config.QueryByTown:
		query.Set("countrycode", settings.CountryCode)
		query.Set("town", settings.Town)
	default:
		return nil, fmt.Errorf("unknown query mode %q", settings.QueryMode)
	}

	query.Set("maxresults", strconv.Itoa(settings.MaxResults))
	query.Set("key", settings.APIKey)
	return query, nil
}

// FetchStations issues the POI request and decodes the body as-is.
func (f *OpenChargeMapFinder) FetchStations(ctx context.Context) ([]models.Station, error) {
	started := time.Now()

	stations, err := f.fetch(ctx)

	elapsed := time.Since(started)
	switch {
	case err == nil:
		log.Debug().Int("station_count", len(stations)).Dur("elapsed", elapsed).Msg("Fetched stations from Open Charge Map")
		f.observe(OutcomeSuccess, "", len(stations), elapsed)
	case errors.Is(err, context.Canceled):
		f.observe(OutcomeCancelled, "", 0, elapsed)
	default:
		f.observe(OutcomeFailure, KindOf(err), 0, elapsed)
	}

	return stations, err
}

func (f *OpenChargeMapFinder) fetch(ctx context.Context) ([]models.Station, error) {
	resp, err := f.httpClient.Get(ctx, poiPath, f.query)
	if err != nil {
		return nil, newTransportError("requesting points of interest", 0, err)
	}
	if resp == nil {
		return nil, newTransportError("no response from Open Charge Map", 0, nil)
	}
	if !resp.OK() {
		return nil, newTransportError(fmt.Sprintf("unexpected status %d", resp.StatusCode), resp.StatusCode, nil)
	}

	var stations []models.Station
	if err := json.Unmarshal(resp.Body, &stations); err != nil {
		return nil, newDecodeError("decoding points of interest", err)
	}
	if stations == nil {
		// a literal JSON null decodes without error
		stations = []models.Station{}
	}

	return stations, nil
}

func (f *OpenChargeMapFinder) observe(outcome Outcome, kind FailureKind, count int, elapsed time.Duration) {
	if f.observer != nil {
		f.observer.ObserveFetch(outcome, kind, count, elapsed)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
