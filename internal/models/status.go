package models

// Status is the availability class a marker is drawn with.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusUnavailable Status = "unavailable"
	StatusUnknown     Status = "unknown"
)

// Icon is the marker glyph family.
type Icon string

const (
	IconAffirmative Icon = "affirmative"
	IconCautionary  Icon = "cautionary"
)

const unknownStatusLabel = "Unknown"

var statusIcons = map[Status]Icon{
	StatusAvailable:   IconAffirmative,
	StatusUnavailable: IconCautionary,
	StatusUnknown:     IconCautionary,
}

// StatusOf classifies a station by its status type. A missing status type is
// Unknown rather than Unavailable so the popup can say so.
func StatusOf(st *StatusType) Status {
	switch {
	case st == nil:
		return StatusUnknown
	case st.ID == AvailableStatusID:
		return StatusAvailable
	default:
		return StatusUnavailable
	}
}

// IconFor maps a status to its glyph. Anything not Available is cautionary.
func IconFor(status Status) Icon {
	if icon, ok := statusIcons[status]; ok {
		return icon
	}
	return IconCautionary
}

// StatusLabel is the popup text for a status type.
func StatusLabel(st *StatusType) string {
	if st == nil {
		return unknownStatusLabel
	}
	return st.Title
}
