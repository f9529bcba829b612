package models

import "context"

// StationFetcher performs one directory lookup for the configured area.
type StationFetcher interface {
	FetchStations(ctx context.Context) ([]Station, error)
}
