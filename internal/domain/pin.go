// Package domain contains the core types of the PainMap server: map pins,
// user overlay marks, memos, and user-added bakeries.
package domain

// PinType categorizes a bakery pin.
type PinType string

// Pin types recognized by the dataset and the add-bakery form.
const (
	PinTypeBoulangerie PinType = "boulangerie"
	PinTypePatisserie  PinType = "patisserie"
	PinTypeArtisan     PinType = "artisan"
)

// Valid reports whether t is one of the recognized pin types.
func (t PinType) Valid() bool {
	switch t {
	case PinTypeBoulangerie, PinTypePatisserie, PinTypeArtisan:
		return true
	}
	return false
}

// Label returns the display label for a pin type.
func (t PinType) Label() string {
	switch t {
	case PinTypePatisserie:
		return "Pâtisserie"
	case PinTypeArtisan:
		return "Artisan"
	default:
		return "Boulangerie"
	}
}

// Pin is a normalized point of interest shown on the map. Pins are immutable
// once constructed: dataset pins live for the process lifetime, custom pins
// until their CustomBakery is deleted. Overlay state (tried, want-to-go,
// excluded, memo) lives in the store, keyed by Pin.ID.
type Pin struct {
	ID              string  `json:"id"`
	Lat             float64 `json:"lat"`
	Lng             float64 `json:"lng"`
	Name            string  `json:"name"`
	NameReading     string  `json:"name_reading"`
	Type            PinType `json:"type"`
	Address         string  `json:"address"`
	Region          string  `json:"region"`
	Characteristics string  `json:"characteristics,omitempty"`
	IsCustom        bool    `json:"is_custom"`
}
