package service

import (
	"context"
	"sort"

	"github.com/painmapapp/painmap-server/internal/store"
)

// RegionStats counts pins and visits within one region.
type RegionStats struct {
	Region string `json:"region"`
	Total  int    `json:"total"`
	Tried  int    `json:"tried"`
}

// Stats summarizes the user's progress across the whole pin set.
type Stats struct {
	TotalPins      int           `json:"total_pins"`
	Tried          int           `json:"tried"`
	WantToGo       int           `json:"want_to_go"`
	Memos          int           `json:"memos"`
	CustomBakeries int           `json:"custom_bakeries"`
	Excluded       int           `json:"excluded"`
	Regions        []RegionStats `json:"regions"`
}

// StatsService computes progress statistics.
type StatsService struct {
	store *store.Store
	pins  *PinService
}

// NewStatsService creates a new stats service.
func NewStatsService(st *store.Store, pins *PinService) *StatsService {
	return &StatsService{store: st, pins: pins}
}

// Stats returns overall and per-region progress counts. Regions with no pins
// are omitted; the list is sorted by region name for stable output.
func (s *StatsService) Stats(_ context.Context) Stats {
	state := s.store.State()

	byRegion := make(map[string]*RegionStats)
	total := 0
	for _, pin := range s.pins.AllPins() {
		total++
		rs, ok := byRegion[pin.Region]
		if !ok {
			rs = &RegionStats{Region: pin.Region}
			byRegion[pin.Region] = rs
		}
		rs.Total++
		if s.store.IsTried(pin.ID) {
			rs.Tried++
		}
	}

	regions := make([]RegionStats, 0, len(byRegion))
	for _, rs := range byRegion {
		regions = append(regions, *rs)
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].Region < regions[j].Region })

	return Stats{
		TotalPins:      total,
		Tried:          len(state.Tried),
		WantToGo:       len(state.WantToGo),
		Memos:          len(state.Memos),
		CustomBakeries: len(state.Custom),
		Excluded:       len(state.Excluded),
		Regions:        regions,
	}
}
