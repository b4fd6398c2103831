package service

import (
	"context"
	"log/slog"

	"github.com/painmapapp/painmap-server/internal/domain"
	"github.com/painmapapp/painmap-server/internal/errors"
	"github.com/painmapapp/painmap-server/internal/store"
)

// MemoService manages per-pin memos and their photo references.
type MemoService struct {
	store  *store.Store
	pins   *PinService
	logger *slog.Logger
}

// NewMemoService creates a new memo service.
func NewMemoService(st *store.Store, pins *PinService, logger *slog.Logger) *MemoService {
	return &MemoService{
		store:  st,
		pins:   pins,
		logger: logger,
	}
}

// SetMemo creates or replaces the memo note and rating for a pin. Rating 0
// clears the rating; attached photos are preserved across rewrites.
func (s *MemoService) SetMemo(ctx context.Context, pinID, note string, rating int) (domain.Memo, error) {
	if !s.pins.Exists(pinID) {
		return domain.Memo{}, errors.NotFoundf("pin %s not found", pinID)
	}
	if rating < 0 || rating > 5 {
		return domain.Memo{}, errors.Validationf("rating must be between 1 and 5, got %d", rating)
	}
	return s.store.UpsertMemo(ctx, pinID, note, rating)
}

// GetMemo returns the memo for a pin.
func (s *MemoService) GetMemo(_ context.Context, pinID string) (domain.Memo, error) {
	memo, ok := s.store.Memo(pinID)
	if !ok {
		return domain.Memo{}, errors.NotFoundf("no memo for pin %s", pinID)
	}
	return memo, nil
}

// DeleteMemo removes the memo, rating, and photo references for a pin.
// Deleting an absent memo succeeds.
func (s *MemoService) DeleteMemo(ctx context.Context, pinID string) error {
	return s.store.DeleteMemo(ctx, pinID)
}

// AddPhoto attaches a photo reference to the pin's memo, creating an empty
// memo first if none exists. Once the memo holds the maximum number of photos
// the addition is silently refused and the unchanged memo is returned.
func (s *MemoService) AddPhoto(ctx context.Context, pinID, uri string) (domain.Memo, error) {
	if !s.pins.Exists(pinID) {
		return domain.Memo{}, errors.NotFoundf("pin %s not found", pinID)
	}
	if uri == "" {
		return domain.Memo{}, errors.Validation("photo uri is required")
	}
	return s.store.AddMemoPhoto(ctx, pinID, uri)
}

// RemovePhoto detaches a photo reference. Removing an absent reference is a
// no-op.
func (s *MemoService) RemovePhoto(ctx context.Context, pinID, uri string) (domain.Memo, error) {
	return s.store.RemoveMemoPhoto(ctx, pinID, uri)
}
