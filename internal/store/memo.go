package store

import (
	"context"
	"slices"
	"time"

	"github.com/painmapapp/painmap-server/internal/domain"
)

// UpsertMemo creates or replaces the note and rating of a pin's memo.
// Existing photos are preserved. A rating of 0 clears the rating.
func (s *Store) UpsertMemo(ctx context.Context, pinID, note string, rating int) (domain.Memo, error) {
	if err := ctx.Err(); err != nil {
		return domain.Memo{}, err
	}

	now := time.Now().UTC()

	s.mu.Lock()
	var memo domain.Memo
	if i := s.memoIndex(pinID); i >= 0 {
		s.state.Memos[i].Note = note
		s.state.Memos[i].Rating = rating
		s.state.Memos[i].UpdatedAt = now
		memo = s.state.Memos[i]
	} else {
		memo = domain.Memo{ID: pinID, Note: note, Rating: rating, UpdatedAt: now}
		s.state.Memos = append(s.state.Memos, memo)
	}
	memo.Photos = slices.Clone(memo.Photos)
	s.mu.Unlock()

	s.signalFlush()
	s.emit(EventMemoUpserted, pinID)
	return memo, nil
}

// Memo returns the memo attached to a pin, if any.
func (s *Store) Memo(pinID string) (domain.Memo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.memoIndex(pinID); i >= 0 {
		m := s.state.Memos[i]
		m.Photos = slices.Clone(m.Photos)
		return m, true
	}
	return domain.Memo{}, false
}

// DeleteMemo removes a pin's memo. No-op if absent.
func (s *Store) DeleteMemo(ctx context.Context, pinID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	before := len(s.state.Memos)
	s.state.Memos = slices.DeleteFunc(s.state.Memos, func(m domain.Memo) bool {
		return m.ID == pinID
	})
	changed := len(s.state.Memos) != before
	s.mu.Unlock()

	if changed {
		s.signalFlush()
		s.emit(EventMemoDeleted, pinID)
	}
	return nil
}

// AddMemoPhoto appends a photo reference to the pin's memo, creating an
// empty-note memo if none exists. Adding past the photo cap is silently
// refused; that is a policy choice, not an error.
func (s *Store) AddMemoPhoto(ctx context.Context, pinID, uri string) (domain.Memo, error) {
	if err := ctx.Err(); err != nil {
		return domain.Memo{}, err
	}

	s.mu.Lock()
	var memo domain.Memo
	var changed bool
	if i := s.memoIndex(pinID); i >= 0 {
		changed = s.state.Memos[i].AddPhoto(uri)
		memo = s.state.Memos[i]
	} else {
		memo = domain.Memo{ID: pinID, UpdatedAt: time.Now().UTC(), Photos: []string{uri}}
		s.state.Memos = append(s.state.Memos, memo)
		changed = true
	}
	memo.Photos = slices.Clone(memo.Photos)
	s.mu.Unlock()

	if changed {
		s.signalFlush()
		s.emit(EventMemoUpserted, pinID)
	}
	return memo, nil
}

// RemoveMemoPhoto drops a photo reference from the pin's memo. No-op when
// the memo or the photo is absent.
func (s *Store) RemoveMemoPhoto(ctx context.Context, pinID, uri string) (domain.Memo, error) {
	if err := ctx.Err(); err != nil {
		return domain.Memo{}, err
	}

	s.mu.Lock()
	var memo domain.Memo
	var changed bool
	if i := s.memoIndex(pinID); i >= 0 {
		changed = s.state.Memos[i].RemovePhoto(uri)
		memo = s.state.Memos[i]
		memo.Photos = slices.Clone(memo.Photos)
	}
	s.mu.Unlock()

	if changed {
		s.signalFlush()
		s.emit(EventMemoUpserted, pinID)
	}
	return memo, nil
}

// MemoPhotos returns the photo references on a pin's memo.
func (s *Store) MemoPhotos(pinID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.memoIndex(pinID); i >= 0 {
		return slices.Clone(s.state.Memos[i].Photos)
	}
	return nil
}

// memoIndex returns the position of a pin's memo, or -1. Caller must hold
// the mutex.
func (s *Store) memoIndex(pinID string) int {
	return slices.IndexFunc(s.state.Memos, func(m domain.Memo) bool {
		return m.ID == pinID
	})
}
