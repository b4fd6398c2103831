// Package service provides the business logic layer for pins, user marks,
// memos, and custom bakeries.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/painmapapp/painmap-server/internal/dataset"
	"github.com/painmapapp/painmap-server/internal/domain"
	"github.com/painmapapp/painmap-server/internal/errors"
	"github.com/painmapapp/painmap-server/internal/geo"
	"github.com/painmapapp/painmap-server/internal/search"
	"github.com/painmapapp/painmap-server/internal/store"
)

// PinView is a pin decorated with the user's overlay state. This is what the
// map and list endpoints return.
type PinView struct {
	domain.Pin
	Tried      bool       `json:"tried"`
	TriedAt    *time.Time `json:"tried_at,omitempty"`
	WantToGo   bool       `json:"want_to_go"`
	Excluded   bool       `json:"excluded"`
	HasMemo    bool       `json:"has_memo"`
	Rating     int        `json:"rating,omitempty"`
	PhotoCount int        `json:"photo_count,omitempty"`
}

// ListOptions narrows the pin listing. Nil override fields fall back to the
// store's current filter state; Query additionally intersects with full-text
// search results.
type ListOptions struct {
	Mode         *domain.FilterMode
	Region       *string
	HideExcluded *bool
	Query        string
}

// PinService merges the bundled dataset with user-added bakeries and applies
// the active filters.
type PinService struct {
	dataset *dataset.Loader
	store   *store.Store
	index   *search.PinIndex
	logger  *slog.Logger
}

// NewPinService creates a new pin service and builds the initial search index.
func NewPinService(ds *dataset.Loader, st *store.Store, index *search.PinIndex, logger *slog.Logger) (*PinService, error) {
	s := &PinService{
		dataset: ds,
		store:   st,
		index:   index,
		logger:  logger,
	}
	if err := s.RebuildIndex(); err != nil {
		return nil, fmt.Errorf("build pin index: %w", err)
	}
	return s, nil
}

// AllPins returns every pin: the bundled dataset plus the user's custom
// bakeries, with no filters applied.
func (s *PinService) AllPins() []domain.Pin {
	datasetPins := s.dataset.Pins()
	custom := s.store.CustomBakeries()

	pins := make([]domain.Pin, 0, len(datasetPins)+len(custom))
	pins = append(pins, datasetPins...)
	for _, b := range custom {
		pins = append(pins, s.dataset.CustomPin(b))
	}
	return pins
}

// ListPins returns pins with overlay state, narrowed by the active filters
// and an optional search query.
func (s *PinService) ListPins(ctx context.Context, opts ListOptions) ([]PinView, error) {
	filters := s.store.Filters()
	if opts.Mode != nil {
		if !opts.Mode.Valid() {
			return nil, errors.Validationf("unknown filter mode %q", *opts.Mode)
		}
		filters.Mode = *opts.Mode
	}
	if opts.Region != nil {
		filters.Region = *opts.Region
	}
	if opts.HideExcluded != nil {
		filters.HideExcluded = *opts.HideExcluded
	}

	var matched map[string]bool
	if opts.Query != "" {
		ids, err := s.index.MatchingIDs(ctx, opts.Query, s.dataset.Count()+len(s.store.CustomBakeries()))
		if err != nil {
			return nil, fmt.Errorf("search pins: %w", err)
		}
		matched = make(map[string]bool, len(ids))
		for _, id := range ids {
			matched[id] = true
		}
	}

	var views []PinView
	for _, pin := range s.AllPins() {
		if matched != nil && !matched[pin.ID] {
			continue
		}
		view := s.decorate(pin)
		if !s.visible(view, filters) {
			continue
		}
		views = append(views, view)
	}

	sort.Slice(views, func(i, j int) bool { return views[i].Name < views[j].Name })
	return views, nil
}

// GetPin returns a single pin with overlay state.
func (s *PinService) GetPin(_ context.Context, pinID string) (PinView, error) {
	pin, ok := s.lookup(pinID)
	if !ok {
		return PinView{}, errors.NotFoundf("pin %s not found", pinID)
	}
	return s.decorate(pin), nil
}

// Exists reports whether a pin id refers to a dataset pin or custom bakery.
func (s *PinService) Exists(pinID string) bool {
	_, ok := s.lookup(pinID)
	return ok
}

// Regions returns the display region groups in fixed order.
func (s *PinService) Regions() []geo.Group {
	return geo.Groups()
}

// RebuildIndex reindexes every pin. Called at startup, after a dataset
// reload, and after custom bakery changes.
func (s *PinService) RebuildIndex() error {
	return s.index.Rebuild(s.AllPins())
}

// IndexDocumentCount reports how many pins the search index holds.
func (s *PinService) IndexDocumentCount() (uint64, error) {
	return s.index.DocumentCount()
}

// DatasetCount reports how many pins the bundled dataset contributed.
func (s *PinService) DatasetCount() int {
	return s.dataset.Count()
}

// CustomPin converts a custom bakery to its pin representation, region
// classified from its coordinates.
func (s *PinService) CustomPin(b domain.CustomBakery) domain.Pin {
	return s.dataset.CustomPin(b)
}

func (s *PinService) lookup(pinID string) (domain.Pin, bool) {
	if pin, ok := s.dataset.Pin(pinID); ok {
		return pin, true
	}
	if b, ok := s.store.CustomBakery(pinID); ok {
		return s.dataset.CustomPin(b), true
	}
	return domain.Pin{}, false
}

func (s *PinService) decorate(pin domain.Pin) PinView {
	view := PinView{Pin: pin}

	if mark, ok := s.store.TriedMark(pin.ID); ok {
		view.Tried = true
		at := mark.TriedAt
		view.TriedAt = &at
	}
	view.WantToGo = s.store.IsWantToGo(pin.ID)
	view.Excluded = s.store.IsExcluded(pin.ID)
	if memo, ok := s.store.Memo(pin.ID); ok {
		view.HasMemo = true
		view.Rating = memo.Rating
		view.PhotoCount = len(memo.Photos)
	}
	return view
}

// visible applies the filter state to a decorated pin.
func (s *PinService) visible(view PinView, filters domain.FilterState) bool {
	switch filters.Mode {
	case domain.FilterTried:
		if !view.Tried {
			return false
		}
	case domain.FilterWantToGo:
		if !view.WantToGo {
			return false
		}
	}
	if filters.Region != "" && view.Region != filters.Region {
		return false
	}
	if filters.HideExcluded && view.Excluded {
		return false
	}
	return true
}
