package cmd

import (
	"context"

	"github.com/bbernstein/chargemap/backend-go/internal/config"
	"github.com/bbernstein/chargemap/backend-go/internal/models"
	"github.com/bbernstein/chargemap/backend-go/internal/station"
	"github.com/spf13/cobra"
)

// FetcherFunc builds the station source for a loaded configuration.
type FetcherFunc func(cfg *config.Config, observer station.Observer) (models.StationFetcher, error)

type ChargemapApp struct {
	ConfigPath string
	NewFetcher FetcherFunc
}

func Execute(ctx context.Context) error {
	app := &ChargemapApp{NewFetcher: openChargeMapFetcher}
	rootCmd := NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}

func NewRootCmd(app *ChargemapApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "chargemap",
		Short:         "Live map of EV charging stations from Open Charge Map",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(
		&app.ConfigPath,
		"config",
		"",
		"Path to a TOML configuration file layered over the environment",
	)

	cmd.AddCommand(NewServeCmd(app))
	cmd.AddCommand(NewFetchCmd(app))

	return cmd
}

// loadConfig reads the environment, overlays the config file if one was
// given, validates, and initialises logging.
func (app *ChargemapApp) loadConfig() (*config.Config, error) {
	cfg := config.LoadFromEnv()
	if app.ConfigPath != "" {
		if err := config.LoadFile(cfg, app.ConfigPath); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.InitializeLogging()
	return cfg, nil
}

func openChargeMapFetcher(cfg *config.Config, observer station.Observer) (models.StationFetcher, error) {
	finder, err := station.NewFetcherFromConfig(cfg, observer)
	if err != nil {
		return nil, err
	}
	return finder, nil
}
