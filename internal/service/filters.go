package service

import (
	"context"
	"slices"

	"github.com/painmapapp/painmap-server/internal/domain"
	"github.com/painmapapp/painmap-server/internal/errors"
	"github.com/painmapapp/painmap-server/internal/geo"
	"github.com/painmapapp/painmap-server/internal/store"
)

// FilterService exposes the in-memory filter selection. Filters intentionally
// reset to defaults on every server start.
type FilterService struct {
	store *store.Store
}

// NewFilterService creates a new filter service.
func NewFilterService(st *store.Store) *FilterService {
	return &FilterService{store: st}
}

// Filters returns the current filter selection.
func (s *FilterService) Filters(_ context.Context) domain.FilterState {
	return s.store.Filters()
}

// UpdateFilters applies the non-nil fields of the update and returns the
// resulting selection.
func (s *FilterService) UpdateFilters(ctx context.Context, update store.FilterUpdate) (domain.FilterState, error) {
	if update.Mode != nil && !update.Mode.Valid() {
		return domain.FilterState{}, errors.Validationf("unknown filter mode %q", *update.Mode)
	}
	if update.Region != nil && *update.Region != "" && !slices.Contains(geo.Regions(), *update.Region) {
		return domain.FilterState{}, errors.Validationf("unknown region %q", *update.Region)
	}
	if update.Distance != nil {
		switch *update.Distance {
		case domain.DistanceNone, domain.Distance500m, domain.Distance1km, domain.Distance3km:
		default:
			return domain.FilterState{}, errors.Validationf("unknown distance filter %q", *update.Distance)
		}
	}
	return s.store.UpdateFilters(ctx, update)
}
