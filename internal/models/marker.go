package models

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IconSet resolves glyph families to image URLs.
type IconSet struct {
	AffirmativeURL string
	CautionaryURL  string
}

func (s IconSet) URL(icon Icon) string {
	if icon == IconAffirmative {
		return s.AffirmativeURL
	}
	return s.CautionaryURL
}

type Popup struct {
	Title      string `json:"title"`
	Status     string `json:"status"`
	Connectors int    `json:"connectors"`
	Address    string `json:"address"`
}

type Marker struct {
	ID        int     `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Status    Status  `json:"status"`
	Icon      Icon    `json:"icon"`
	IconURL   string  `json:"iconUrl"`
	Popup     Popup   `json:"popup"`
}

// NewMarker places a station on the map.
func NewMarker(station Station, icons IconSet) Marker {
	status := StatusOf(station.StatusType)
	icon := IconFor(status)

	return Marker{
		ID:        station.ID,
		Latitude:  station.AddressInfo.Latitude,
		Longitude: station.AddressInfo.Longitude,
		Status:    status,
		Icon:      icon,
		IconURL:   icons.URL(icon),
		Popup: Popup{
			Title:      station.AddressInfo.Title,
			Status:     StatusLabel(station.StatusType),
			Connectors: station.ConnectorCount(),
			Address:    station.AddressInfo.AddressLine1,
		},
	}
}

// NewMarkers keeps response order; nothing is sorted, filtered or deduplicated.
func NewMarkers(stations []Station, icons IconSet) []Marker {
	markers := make([]Marker, 0, len(stations))
	for _, station := range stations {
		markers = append(markers, NewMarker(station, icons))
	}
	return markers
}
