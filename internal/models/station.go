package models

// Source names the directory a station record came from.
type Source string

const SourceOpenChargeMap Source = "OCM"

// AvailableStatusID is the Open Charge Map status type meaning the site is
// operational and free to use.
const AvailableStatusID = 50

// Station is one Open Charge Map point of interest. Field names follow the
// upstream PascalCase JSON; records are kept exactly as decoded.
type Station struct {
	ID          int          `json:"ID"`
	UUID        string       `json:"UUID,omitempty"`
	AddressInfo AddressInfo  `json:"AddressInfo"`
	StatusType  *StatusType  `json:"StatusType"`
	Connections []Connection `json:"Connections,omitempty"`
}

type AddressInfo struct {
	Title        string  `json:"Title"`
	AddressLine1 string  `json:"AddressLine1"`
	Town         string  `json:"Town,omitempty"`
	Latitude     float64 `json:"Latitude"`
	Longitude    float64 `json:"Longitude"`
}

type StatusType struct {
	ID               int    `json:"ID"`
	Title            string `json:"Title"`
	IsOperational    *bool  `json:"IsOperational,omitempty"`
	IsUserSelectable bool   `json:"IsUserSelectable,omitempty"`
}

// Connection is a single connector on a station. Only the count matters to
// the map; the rest is carried for JSON feeds.
type Connection struct {
	ID             int             `json:"ID"`
	ConnectionType *ConnectionType `json:"ConnectionType,omitempty"`
	PowerKW        *float64        `json:"PowerKW,omitempty"`
	Quantity       *int            `json:"Quantity,omitempty"`
}

type ConnectionType struct {
	ID    int    `json:"ID"`
	Title string `json:"Title"`
}

// ConnectorCount is zero when the record has no connection list.
func (s Station) ConnectorCount() int {
	return len(s.Connections)
}
