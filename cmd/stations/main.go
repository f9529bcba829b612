package main

import (
	"context"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bbernstein/chargemap/backend-go/internal/api"
	"github.com/bbernstein/chargemap/backend-go/internal/config"
	"github.com/bbernstein/chargemap/backend-go/internal/handler"
	"github.com/bbernstein/chargemap/backend-go/internal/station"
	"github.com/bbernstein/chargemap/backend-go/internal/view"
	"github.com/rs/zerolog/log"
)

var (
	stationsHandler *handler.StationsHandler
	setupOnce       sync.Once
	lambdaStart     = lambda.Start
)

func init() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()

		log.Info().Str("env", cfg.Environment).Msg("Environment")

		if err := cfg.Validate(); err != nil {
			log.Error().Err(err).Msg("Invalid configuration")
			return
		}

		fetcher, err := station.NewFetcherFromConfig(cfg, nil)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create station fetcher")
			return
		}
		stationsHandler = handler.NewStationsHandler(
			fetcher,
			view.SettingsFromConfig(cfg),
			cfg.Views.GetSettleTimeout(),
		)
	})
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if stationsHandler == nil {
		return api.Error("Service not configured", http.StatusInternalServerError)
	}
	return stationsHandler.HandleRequest(ctx, request)
}

func main() {
	lambdaStart(handleRequest)
}
