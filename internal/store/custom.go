package store

import (
	"context"
	"slices"
	"time"

	"github.com/painmapapp/painmap-server/internal/domain"
	"github.com/painmapapp/painmap-server/internal/id"
)

// AddCustomBakery creates a user-authored bakery with a fresh identifier.
// Generated identifiers carry the custom prefix so they can never collide
// with dataset ids.
func (s *Store) AddCustomBakery(ctx context.Context, name string, pinType domain.PinType, lat, lng float64, address string) (domain.CustomBakery, error) {
	if err := ctx.Err(); err != nil {
		return domain.CustomBakery{}, err
	}

	bakeryID, err := id.Generate(id.CustomPrefix)
	if err != nil {
		return domain.CustomBakery{}, err
	}

	bakery := domain.CustomBakery{
		ID:        bakeryID,
		Name:      name,
		Type:      pinType,
		Lat:       lat,
		Lng:       lng,
		Address:   address,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.state.Custom = append(s.state.Custom, bakery)
	s.mu.Unlock()

	s.signalFlush()
	s.emit(EventCustomCreated, bakeryID)
	return bakery, nil
}

// UpdateCustomBakery merges the set fields of the update into an existing
// bakery. The second return value is false when the id is unknown.
func (s *Store) UpdateCustomBakery(ctx context.Context, bakeryID string, update domain.CustomBakeryUpdate) (domain.CustomBakery, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.CustomBakery{}, false, err
	}

	s.mu.Lock()
	i := slices.IndexFunc(s.state.Custom, func(b domain.CustomBakery) bool {
		return b.ID == bakeryID
	})
	if i < 0 {
		s.mu.Unlock()
		return domain.CustomBakery{}, false, nil
	}
	s.state.Custom[i].Apply(update)
	bakery := s.state.Custom[i]
	s.mu.Unlock()

	s.signalFlush()
	s.emit(EventCustomUpdated, bakeryID)
	return bakery, true, nil
}

// DeleteCustomBakery removes the bakery and cascades removal of its tried
// mark, want-to-go membership, and memo. All rows disappear in one step
// under the lock; callers never observe a partial cascade. No-op when the
// id is unknown.
func (s *Store) DeleteCustomBakery(ctx context.Context, bakeryID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.Lock()
	before := len(s.state.Custom)
	s.state.Custom = slices.DeleteFunc(s.state.Custom, func(b domain.CustomBakery) bool {
		return b.ID == bakeryID
	})
	deleted := len(s.state.Custom) != before
	if deleted {
		s.state.Tried = slices.DeleteFunc(s.state.Tried, func(m domain.TriedMark) bool {
			return m.ID == bakeryID
		})
		s.state.WantToGo = slices.DeleteFunc(s.state.WantToGo, func(pid string) bool {
			return pid == bakeryID
		})
		s.state.Memos = slices.DeleteFunc(s.state.Memos, func(m domain.Memo) bool {
			return m.ID == bakeryID
		})
	}
	s.mu.Unlock()

	if deleted {
		s.signalFlush()
		s.emit(EventCustomDeleted, bakeryID)
	}
	return deleted, nil
}

// CustomBakeries returns a copy of all user-authored bakeries.
func (s *Store) CustomBakeries() []domain.CustomBakery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.state.Custom)
}

// CustomBakery looks up a user-authored bakery by id.
func (s *Store) CustomBakery(bakeryID string) (domain.CustomBakery, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.state.Custom {
		if b.ID == bakeryID {
			return b, true
		}
	}
	return domain.CustomBakery{}, false
}
