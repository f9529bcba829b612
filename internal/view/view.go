package view

import (
	"context"
	"errors"
	"sync"

	"github.com/bbernstein/chargemap/backend-go/internal/models"
	"github.com/bbernstein/chargemap/backend-go/internal/station"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ViewState is everything a render depends on besides static settings.
type ViewState struct {
	Stations []models.Station
	Loading  bool
}

type Option func(*StationMapView)

// WithLogger sets the logger failures are reported to.
func WithLogger(logger zerolog.Logger) Option {
	return func(v *StationMapView) {
		v.logger = logger
	}
}

// StationMapView owns one map view: a single fetch issued on Mount and the
// state it settles into. Loading goes from true to false exactly once.
type StationMapView struct {
	fetcher models.StationFetcher
	logger  zerolog.Logger

	mu        sync.Mutex
	state     ViewState
	mounted   bool
	tornDown  bool
	cancel    context.CancelFunc
	done      chan struct{}
	closeDone sync.Once
}

func NewStationMapView(fetcher models.StationFetcher, opts ...Option) *StationMapView {
	v := &StationMapView{
		fetcher: fetcher,
		logger:  log.Logger,
		state: ViewState{
			Stations: []models.Station{},
			Loading:  true,
		},
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mount starts the view's only fetch. ctx bounds the fetch for the lifetime
// of the view, so it should not be a short-lived request context. Calls after
// the first, or after Teardown, do nothing.
func (v *StationMapView) Mount(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.mounted || v.tornDown {
		return
	}
	v.mounted = true

	fetchCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel

	go v.run(fetchCtx)
}

func (v *StationMapView) run(ctx context.Context) {
	defer v.finish()

	stations, err := v.fetcher.FetchStations(ctx)
	v.settle(ctx, stations, err)
}

func (v *StationMapView) settle(ctx context.Context, stations []models.Station, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.tornDown {
		v.logger.Debug().Msg("View torn down before fetch settled, discarding result")
		return
	}
	if err != nil && errors.Is(err, context.Canceled) && ctx.Err() != nil {
		// the mount context ended, usually at shutdown
		v.logger.Debug().Msg("Fetch cancelled with its mount context, discarding result")
		return
	}

	if err != nil {
		v.logger.Error().Err(err).Str("kind", string(station.KindOf(err))).Msg("Error fetching stations")
	} else {
		v.state.Stations = stations
		v.logger.Debug().Int("station_count", len(stations)).Msg("Stations loaded")
	}
	v.state.Loading = false
}

func (v *StationMapView) finish() {
	v.closeDone.Do(func() { close(v.done) })
}

// Teardown deactivates the view. A fetch still in flight is cancelled and
// its result is dropped without touching state.
func (v *StationMapView) Teardown() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.tornDown {
		return
	}
	v.tornDown = true
	if v.cancel != nil {
		v.cancel()
	}
	if !v.mounted {
		v.finish()
	}
}

// Active reports whether the view is mounted and not torn down.
func (v *StationMapView) Active() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mounted && !v.tornDown
}

// State returns a copy of the current state.
func (v *StationMapView) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()

	stations := make([]models.Station, len(v.state.Stations))
	copy(stations, v.state.Stations)
	return ViewState{Stations: stations, Loading: v.state.Loading}
}

// Done is closed once the fetch goroutine has returned, whether its result
// was applied or discarded.
func (v *StationMapView) Done() <-chan struct{} {
	return v.done
}

// Wait blocks until the fetch has returned or ctx ends, then reports state.
// The state is returned even when ctx ends first; Loading is then still true.
func (v *StationMapView) Wait(ctx context.Context) (ViewState, error) {
	select {
	case <-v.done:
		return v.State(), nil
	case <-ctx.Done():
		return v.State(), ctx.Err()
	}
}
