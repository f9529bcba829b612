package view

import (
	"context"

	"github.com/bbernstein/chargemap/backend-go/internal/config"
	"github.com/bbernstein/chargemap/backend-go/internal/models"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Hooks is notified as views enter and leave the registry.
type Hooks interface {
	ViewMounted()
	ViewReleased()
}

type noopHooks struct{}

func (noopHooks) ViewMounted()  {}
func (noopHooks) ViewReleased() {}

type RegistryOption func(*Registry)

func WithHooks(hooks Hooks) RegistryOption {
	return func(r *Registry) {
		if hooks != nil {
			r.hooks = hooks
		}
	}
}

func WithRegistryLogger(logger zerolog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// Registry holds mounted views by id. It is bounded by count and age; a view
// leaving the registry for any reason is torn down.
type Registry struct {
	base    context.Context
	fetcher models.StationFetcher
	views   *expirable.LRU[string, *StationMapView]
	hooks   Hooks
	logger  zerolog.Logger
}

// NewRegistry creates a registry whose views fetch under base.
func NewRegistry(base context.Context, fetcher models.StationFetcher, cfg config.ViewConfig, opts ...RegistryOption) *Registry {
	r := &Registry{
		base:    base,
		fetcher: fetcher,
		hooks:   noopHooks{},
		logger:  log.Logger,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.views = expirable.NewLRU[string, *StationMapView](cfg.Limit, r.release, cfg.GetTTL())
	return r
}

func (r *Registry) release(id string, v *StationMapView) {
	v.Teardown()
	r.hooks.ViewReleased()
	r.logger.Debug().Str("view_id", id).Msg("View released")
}

// Mount creates, registers and mounts a new view.
func (r *Registry) Mount() (string, *StationMapView) {
	id := uuid.NewString()
	v := NewStationMapView(r.fetcher, WithLogger(r.logger.With().Str("view_id", id).Logger()))

	r.views.Add(id, v)
	r.hooks.ViewMounted()
	v.Mount(r.base)

	return id, v
}

func (r *Registry) Get(id string) (*StationMapView, bool) {
	return r.views.Get(id)
}

// Remove tears the view down. It reports whether the id was present.
func (r *Registry) Remove(id string) bool {
	return r.views.Remove(id)
}

func (r *Registry) Len() int {
	return r.views.Len()
}

// Purge tears down every view.
func (r *Registry) Purge() {
	r.views.Purge()
}
