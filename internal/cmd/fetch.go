package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bbernstein/chargemap/backend-go/internal/api"
	"github.com/bbernstein/chargemap/backend-go/internal/view"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewFetchCmd(app *ChargemapApp) *cobra.Command {
	var asGeoJSON bool

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Mount one view, wait for it to settle, and print its markers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			fetcher, err := app.NewFetcher(cfg, nil)
			if err != nil {
				return err
			}

			v := view.NewStationMapView(fetcher)
			v.Mount(cmd.Context())
			defer v.Teardown()

			timeout := cfg.Views.GetSettleTimeout()
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			state, err := v.Wait(ctx)
			if err != nil {
				if !errors.Is(err, context.DeadlineExceeded) || cmd.Context().Err() != nil {
					return fmt.Errorf("waiting for stations: %w", err)
				}
				log.Warn().Dur("timeout", timeout).Msg("Stations did not settle before timeout")
			}

			page := view.Render(state, view.SettingsFromConfig(cfg))

			var body any = api.NewMarkersResponse(page)
			if asGeoJSON {
				body = view.FeatureCollection(page.Markers())
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(body)
		},
	}

	cmd.Flags().BoolVar(&asGeoJSON, "geojson", false, "Print a GeoJSON FeatureCollection instead of markers")

	return cmd
}
