package view

import (
	"github.com/bbernstein/chargemap/backend-go/internal/config"
	"github.com/bbernstein/chargemap/backend-go/internal/models"
)

const LoadingText = "Loading stations..."

type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// Settings are the fixed parts of a map page.
type Settings struct {
	Title     string
	Center    models.Coordinate
	Zoom      int
	Tiles     TileLayer
	Icons     models.IconSet
	ShadowURL string
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Title: cfg.Map.Title,
		Center: models.Coordinate{
			Latitude:  cfg.OCM.Latitude,
			Longitude: cfg.OCM.Longitude,
		},
		Zoom: cfg.Map.Zoom,
		Tiles: TileLayer{
			URL:         cfg.Map.TileURL,
			Attribution: cfg.Map.TileAttribution,
		},
		Icons: models.IconSet{
			AffirmativeURL: cfg.Map.AvailableIconURL,
			CautionaryURL:  cfg.Map.UnavailableIconURL,
		},
		ShadowURL: cfg.Map.ShadowURL,
	}
}

type MapCanvas struct {
	Center    models.Coordinate `json:"center"`
	Zoom      int               `json:"zoom"`
	Tiles     TileLayer         `json:"tiles"`
	ShadowURL string            `json:"shadowUrl"`
	Markers   []models.Marker   `json:"markers"`
}

// Page is the render output. Map is nil while loading.
type Page struct {
	Title       string
	Loading     bool
	LoadingText string
	Map         *MapCanvas
}

// Render is a pure function of state and settings.
func Render(state ViewState, settings Settings) Page {
	page := Page{
		Title:   settings.Title,
		Loading: state.Loading,
	}
	if state.Loading {
		page.LoadingText = LoadingText
		return page
	}

	page.Map = &MapCanvas{
		Center:    settings.Center,
		Zoom:      settings.Zoom,
		Tiles:     settings.Tiles,
		ShadowURL: settings.ShadowURL,
		Markers:   models.NewMarkers(state.Stations, settings.Icons),
	}
	return page
}

// Markers returns the page's markers, empty while loading.
func (p Page) Markers() []models.Marker {
	if p.Map == nil {
		return []models.Marker{}
	}
	return p.Map.Markers
}
