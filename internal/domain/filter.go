package domain

// FilterMode selects which overlay subset the list and map show.
type FilterMode string

// Filter modes. All is the launch default.
const (
	FilterAll      FilterMode = "all"
	FilterTried    FilterMode = "tried"
	FilterWantToGo FilterMode = "wantToGo"
)

// Valid reports whether m is a recognized filter mode.
func (m FilterMode) Valid() bool {
	switch m {
	case FilterAll, FilterTried, FilterWantToGo:
		return true
	}
	return false
}

// DistanceFilter is reserved configuration carried over from the original
// interface. No behavior consumes it yet.
type DistanceFilter string

// Distance filter values.
const (
	DistanceNone DistanceFilter = "none"
	Distance500m DistanceFilter = "500m"
	Distance1km  DistanceFilter = "1km"
	Distance3km  DistanceFilter = "3km"
)

// FilterState is the store-resident UI filter selection. It is never
// persisted: every launch starts from DefaultFilterState.
type FilterState struct {
	Mode         FilterMode     `json:"mode"`
	Region       string         `json:"region"`
	HideExcluded bool           `json:"hide_excluded"`
	Distance     DistanceFilter `json:"distance"`
}

// DefaultFilterState returns the launch defaults: everything visible.
func DefaultFilterState() FilterState {
	return FilterState{
		Mode:     FilterAll,
		Region:   "",
		Distance: DistanceNone,
	}
}
