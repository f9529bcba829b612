package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/chargemap/backend-go/internal/api"
	"github.com/bbernstein/chargemap/backend-go/internal/models"
	"github.com/bbernstein/chargemap/backend-go/internal/view"
	"github.com/rs/zerolog/log"
)

// StationsHandler serves one freshly mounted view per invocation. The query
// is fixed by configuration; request parameters are ignored.
type StationsHandler struct {
	fetcher       models.StationFetcher
	settings      view.Settings
	settleTimeout time.Duration
}

func NewStationsHandler(fetcher models.StationFetcher, settings view.Settings, settleTimeout time.Duration) *StationsHandler {
	return &StationsHandler{
		fetcher:       fetcher,
		settings:      settings,
		settleTimeout: settleTimeout,
	}
}

func (h *StationsHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod != "" && request.HTTPMethod != http.MethodGet {
		return api.Error("Only GET method is allowed", http.StatusMethodNotAllowed)
	}

	log.Info().Str("request_id", request.RequestContext.RequestID).Msg("Handling stations request")

	v := view.NewStationMapView(h.fetcher)
	v.Mount(ctx)
	defer v.Teardown()

	waitCtx, cancel := context.WithTimeout(ctx, h.settleTimeout)
	defer cancel()

	state, _ := v.Wait(waitCtx)
	if ctx.Err() != nil {
		return api.Error("Request cancelled", http.StatusServiceUnavailable)
	}
	if state.Loading {
		log.Warn().Dur("timeout", h.settleTimeout).Msg("Stations did not settle before timeout")
	}

	return api.Success(api.NewMarkersResponse(view.Render(state, h.settings)))
}
