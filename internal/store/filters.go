package store

import (
	"context"

	"github.com/painmapapp/painmap-server/internal/domain"
)

// Filters returns the current filter state. Filter state is in-memory only
// and resets to the defaults on every launch.
func (s *Store) Filters() domain.FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// FilterUpdate carries optional filter changes. Nil fields are left as-is.
type FilterUpdate struct {
	Mode         *domain.FilterMode
	Region       *string
	HideExcluded *bool
	Distance     *domain.DistanceFilter
}

// UpdateFilters applies the set fields of the update and returns the
// resulting state.
func (s *Store) UpdateFilters(ctx context.Context, update FilterUpdate) (domain.FilterState, error) {
	if err := ctx.Err(); err != nil {
		return domain.FilterState{}, err
	}

	s.mu.Lock()
	if update.Mode != nil {
		s.filters.Mode = *update.Mode
	}
	if update.Region != nil {
		s.filters.Region = *update.Region
	}
	if update.HideExcluded != nil {
		s.filters.HideExcluded = *update.HideExcluded
	}
	if update.Distance != nil {
		s.filters.Distance = *update.Distance
	}
	filters := s.filters
	s.mu.Unlock()

	s.emit(EventFiltersUpdated, "")
	return filters, nil
}
