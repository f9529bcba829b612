package view

import (
	"github.com/bbernstein/chargemap/backend-go/internal/models"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// FeatureCollection renders markers as GeoJSON points in marker order.
func FeatureCollection(markers []models.Marker) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, m := range markers {
		feature := geojson.NewFeature(orb.Point{m.Longitude, m.Latitude})
		feature.ID = m.ID
		feature.Properties = geojson.Properties{
			"source":     string(models.SourceOpenChargeMap),
			"status":     string(m.Status),
			"icon":       string(m.Icon),
			"iconUrl":    m.IconURL,
			"title":      m.Popup.Title,
			"statusText": m.Popup.Status,
			"connectors": m.Popup.Connectors,
			"address":    m.Popup.Address,
		}
		fc.Append(feature)
	}
	return fc
}
