package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/bbernstein/chargemap/backend-go/internal/view"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

type Server struct {
	addr     string
	registry *view.Registry
	settings view.Settings
	renderer *Renderer
	router   chi.Router
	server   *http.Server
}

func NewServer(addr string, registry *view.Registry, settings view.Settings) (*Server, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	server := &Server{
		addr:     addr,
		registry: registry,
		settings: settings,
		renderer: renderer,
	}
	server.router = server.routes(log.Logger)

	return server, nil
}

func (server *Server) routes(logger zerolog.Logger) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(hlog.NewHandler(logger))
	router.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("req_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request handled")
	}))
	router.Use(middleware.Recoverer)

	router.Get("/", server.handleMount)
	router.Get("/healthz", server.handleHealth)
	router.Route("/views/{id}", func(r chi.Router) {
		r.Get("/", server.handleViewPage)
		r.Get("/stations.json", server.handleStationsJSON)
		r.Get("/stations.geojson", server.handleStationsGeoJSON)
		r.Delete("/", server.handleRelease)
	})

	return router
}

func (server *Server) Handler() http.Handler {
	return server.router
}

// Serve blocks until ctx is done, then drains in-flight requests and tears
// down every view still held.
func (server *Server) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", server.addr)
	if err != nil {
		return err
	}

	server.server = &http.Server{
		Handler:           server.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.server.Serve(listener)
	}()
	log.Info().Str("addr", listener.Addr().String()).Msg("Map server listening")

	select {
	case err := <-errCh:
		server.registry.Purge()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down map server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err = server.server.Shutdown(shutdownCtx)
	server.registry.Purge()
	return err
}
