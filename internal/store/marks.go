package store

import (
	"context"
	"slices"
	"time"

	"github.com/painmapapp/painmap-server/internal/domain"
)

// MarkTried records that the user has been to the pin. Idempotent; marking
// an already-tried pin returns the existing mark unchanged.
func (s *Store) MarkTried(ctx context.Context, pinID string) (domain.TriedMark, error) {
	if err := ctx.Err(); err != nil {
		return domain.TriedMark{}, err
	}

	s.mu.Lock()
	for _, m := range s.state.Tried {
		if m.ID == pinID {
			s.mu.Unlock()
			return m, nil
		}
	}
	mark := domain.TriedMark{ID: pinID, TriedAt: time.Now().UTC()}
	s.state.Tried = append(s.state.Tried, mark)
	s.mu.Unlock()

	s.signalFlush()
	s.emit(EventTriedMarked, pinID)
	return mark, nil
}

// UnmarkTried removes the tried mark if present. Idempotent.
func (s *Store) UnmarkTried(ctx context.Context, pinID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	before := len(s.state.Tried)
	s.state.Tried = slices.DeleteFunc(s.state.Tried, func(m domain.TriedMark) bool {
		return m.ID == pinID
	})
	changed := len(s.state.Tried) != before
	s.mu.Unlock()

	if changed {
		s.signalFlush()
		s.emit(EventTriedUnmarked, pinID)
	}
	return nil
}

// IsTried reports whether the pin carries a tried mark.
func (s *Store) IsTried(pinID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.ContainsFunc(s.state.Tried, func(m domain.TriedMark) bool {
		return m.ID == pinID
	})
}

// TriedCount returns the number of tried pins.
func (s *Store) TriedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.Tried)
}

// TriedMark returns the mark for a pin, if any.
func (s *Store) TriedMark(pinID string) (domain.TriedMark, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.state.Tried {
		if m.ID == pinID {
			return m, true
		}
	}
	return domain.TriedMark{}, false
}

// AddWantToGo bookmarks the pin for a future visit. Idempotent.
func (s *Store) AddWantToGo(ctx context.Context, pinID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if slices.Contains(s.state.WantToGo, pinID) {
		s.mu.Unlock()
		return nil
	}
	s.state.WantToGo = append(s.state.WantToGo, pinID)
	s.mu.Unlock()

	s.signalFlush()
	s.emit(EventWantToGoAdded, pinID)
	return nil
}

// RemoveWantToGo drops the bookmark if present. Idempotent.
func (s *Store) RemoveWantToGo(ctx context.Context, pinID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	before := len(s.state.WantToGo)
	s.state.WantToGo = slices.DeleteFunc(s.state.WantToGo, func(id string) bool {
		return id == pinID
	})
	changed := len(s.state.WantToGo) != before
	s.mu.Unlock()

	if changed {
		s.signalFlush()
		s.emit(EventWantToGoRemoved, pinID)
	}
	return nil
}

// IsWantToGo reports whether the pin is bookmarked.
func (s *Store) IsWantToGo(pinID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.state.WantToGo, pinID)
}

// WantToGoCount returns the number of bookmarked pins.
func (s *Store) WantToGoCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.WantToGo)
}

// Exclude hides the pin from default list views. Idempotent.
func (s *Store) Exclude(ctx context.Context, pinID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if slices.Contains(s.state.Excluded, pinID) {
		s.mu.Unlock()
		return nil
	}
	s.state.Excluded = append(s.state.Excluded, pinID)
	s.mu.Unlock()

	s.signalFlush()
	s.emit(EventExcluded, pinID)
	return nil
}

// Unexclude makes the pin visible again. Idempotent.
func (s *Store) Unexclude(ctx context.Context, pinID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	before := len(s.state.Excluded)
	s.state.Excluded = slices.DeleteFunc(s.state.Excluded, func(id string) bool {
		return id == pinID
	})
	changed := len(s.state.Excluded) != before
	s.mu.Unlock()

	if changed {
		s.signalFlush()
		s.emit(EventUnexcluded, pinID)
	}
	return nil
}

// ClearExcluded empties the exclusion list.
func (s *Store) ClearExcluded(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	changed := len(s.state.Excluded) > 0
	s.state.Excluded = []string{}
	s.mu.Unlock()

	if changed {
		s.signalFlush()
		s.emit(EventExcludedCleared, "")
	}
	return nil
}

// IsExcluded reports whether the pin is hidden.
func (s *Store) IsExcluded(pinID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.state.Excluded, pinID)
}
