// Package geo classifies coordinates into French administrative regions using
// a fixed table of approximate bounding boxes.
package geo

// regionBounds is an entry in the ordered classification table.
// Bounds are inclusive on all sides.
type regionBounds struct {
	name   string
	minLat float64
	maxLat float64
	minLng float64
	maxLng float64
}

// bounds is the ordered lookup table. The boxes overlap in places; order
// decides ties, so it must not be reordered.
var bounds = []regionBounds{
	{"Île-de-France", 48.1, 49.2, 1.4, 3.4},
	{"Auvergne-Rhône-Alpes", 43.9, 46.3, 2.7, 7.1},
	{"Nouvelle-Aquitaine", 42.6, 46.9, -1.8, 2.2},
	{"Occitanie", 42.3, 44.2, 1.0, 4.8},
	{"Hauts-de-France", 49.9, 51.0, 1.5, 4.2},
	{"Provence-Alpes-Côte d'Azur", 43.0, 44.5, 4.6, 7.7},
	{"Grand Est", 47.4, 49.8, 5.4, 8.2},
	{"Pays de la Loire", 46.1, 48.0, -2.6, 0.9},
	{"Bretagne", 47.2, 48.9, -4.8, -1.0},
	{"Normandie", 48.3, 49.7, -1.9, 1.9},
	{"Bourgogne-Franche-Comté", 46.2, 48.2, 3.3, 7.2},
	{"Centre-Val de Loire", 46.4, 48.4, 0.0, 3.2},
	{"Corse", 41.3, 43.0, 8.5, 9.6},
}

// Classify returns the name of the first region whose bounding box contains
// the coordinate, or "" when no box matches.
func Classify(lat, lng float64) string {
	for _, b := range bounds {
		if lat >= b.minLat && lat <= b.maxLat && lng >= b.minLng && lng <= b.maxLng {
			return b.name
		}
	}
	return ""
}

// Regions returns the region names in classification order.
func Regions() []string {
	names := make([]string, len(bounds))
	for i, b := range bounds {
		names[i] = b.name
	}
	return names
}

// Group is a coarse area grouping of regions used by the list UI.
type Group struct {
	Name    string   `json:"name"`
	Regions []string `json:"regions"`
}

// Groups returns the coarse area groups in display order.
func Groups() []Group {
	return []Group{
		{Name: "Île-de-France", Regions: []string{"Île-de-France"}},
		{Name: "Northeast", Regions: []string{"Hauts-de-France", "Grand Est", "Bourgogne-Franche-Comté"}},
		{Name: "Northwest", Regions: []string{"Normandie", "Bretagne", "Pays de la Loire"}},
		{Name: "Central", Regions: []string{"Centre-Val de Loire", "Nouvelle-Aquitaine"}},
		{Name: "Southeast", Regions: []string{"Auvergne-Rhône-Alpes", "Provence-Alpes-Côte d'Azur", "Corse"}},
		{Name: "Southwest", Regions: []string{"Occitanie"}},
	}
}
