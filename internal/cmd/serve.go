package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bbernstein/chargemap/backend-go/internal/telemetry"
	"github.com/bbernstein/chargemap/backend-go/internal/view"
	"github.com/bbernstein/chargemap/backend-go/internal/web"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func NewServeCmd(app *ChargemapApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the station map and Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.serve(cmd.Context())
		},
	}

	return cmd
}

func (app *ChargemapApp) serve(parent context.Context) error {
	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}

	telemetryServer := telemetry.NewServer(cfg.MetricsAddr)
	metrics := telemetry.NewMetrics(telemetryServer.Registry())

	fetcher, err := app.NewFetcher(cfg, metrics)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := view.NewRegistry(ctx, fetcher, cfg.Views, view.WithHooks(metrics))
	webServer, err := web.NewServer(cfg.ListenAddr, registry, view.SettingsFromConfig(cfg))
	if err != nil {
		return err
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("query_mode", string(cfg.OCM.QueryMode)).
		Msg("Starting chargemap")

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error { return webServer.Serve(groupCtx) })
	group.Go(func() error { return telemetryServer.Serve(groupCtx) })

	return group.Wait()
}
