package service

import (
	"context"
	"log/slog"

	"github.com/painmapapp/painmap-server/internal/domain"
	"github.com/painmapapp/painmap-server/internal/errors"
	"github.com/painmapapp/painmap-server/internal/store"
)

// MarkService manages the tried, want-to-go, and excluded overlays.
//
// Marking requires the pin to exist; unmarking is idempotent and succeeds
// even when nothing was marked, so repeated DELETEs are safe.
type MarkService struct {
	store  *store.Store
	pins   *PinService
	logger *slog.Logger
}

// NewMarkService creates a new mark service.
func NewMarkService(st *store.Store, pins *PinService, logger *slog.Logger) *MarkService {
	return &MarkService{
		store:  st,
		pins:   pins,
		logger: logger,
	}
}

// MarkTried records a visit. Marking twice keeps the original timestamp.
func (s *MarkService) MarkTried(ctx context.Context, pinID string) (domain.TriedMark, error) {
	if !s.pins.Exists(pinID) {
		return domain.TriedMark{}, errors.NotFoundf("pin %s not found", pinID)
	}
	return s.store.MarkTried(ctx, pinID)
}

// UnmarkTried removes the visit record for a pin.
func (s *MarkService) UnmarkTried(ctx context.Context, pinID string) error {
	return s.store.UnmarkTried(ctx, pinID)
}

// AddWantToGo puts a pin on the want-to-go list.
func (s *MarkService) AddWantToGo(ctx context.Context, pinID string) error {
	if !s.pins.Exists(pinID) {
		return errors.NotFoundf("pin %s not found", pinID)
	}
	return s.store.AddWantToGo(ctx, pinID)
}

// RemoveWantToGo takes a pin off the want-to-go list.
func (s *MarkService) RemoveWantToGo(ctx context.Context, pinID string) error {
	return s.store.RemoveWantToGo(ctx, pinID)
}

// Exclude hides a pin from the map when hide-excluded is on.
func (s *MarkService) Exclude(ctx context.Context, pinID string) error {
	if !s.pins.Exists(pinID) {
		return errors.NotFoundf("pin %s not found", pinID)
	}
	return s.store.Exclude(ctx, pinID)
}

// Unexclude restores a hidden pin.
func (s *MarkService) Unexclude(ctx context.Context, pinID string) error {
	return s.store.Unexclude(ctx, pinID)
}

// ClearExcluded restores every hidden pin at once.
func (s *MarkService) ClearExcluded(ctx context.Context) error {
	return s.store.ClearExcluded(ctx)
}
