// Package store is the single source of truth for all mutable user state.
// State lives in memory behind a mutex; every mutation schedules a debounced
// snapshot write of the whole document to an embedded Badger database.
package store

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/painmapapp/painmap-server/internal/domain"
)

// stateKey is the single namespaced key holding the serialized user state.
const stateKey = "painmap:state:v1"

// defaultFlushDebounce is used when New is given a non-positive debounce.
const defaultFlushDebounce = 200 * time.Millisecond

// Store wraps a Badger database instance and the in-memory user state.
//
// Mutations update memory synchronously and return immediately; the durable
// snapshot write happens on a background goroutine. A crash between the two
// loses at most the latest mutations since the last flush.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	// Event emitter for broadcasting changes.
	emitter EventEmitter

	mu      sync.RWMutex
	state   *domain.UserState
	filters domain.FilterState

	debounce time.Duration
	flushCh  chan struct{}
	done     chan struct{}
	wg       sync.WaitGroup

	closeOnce sync.Once
	closeErr  error
}

// New opens the database at path, hydrates the in-memory state from the last
// snapshot, and starts the background flusher. A missing or malformed
// snapshot falls back to the all-empty initial state.
func New(path string, logger *slog.Logger, emitter EventEmitter, debounce time.Duration) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if debounce <= 0 {
		debounce = defaultFlushDebounce
	}

	s := &Store{
		db:       db,
		logger:   logger,
		emitter:  emitter,
		filters:  domain.DefaultFilterState(),
		debounce: debounce,
		flushCh:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	s.hydrate()

	s.wg.Add(1)
	go s.flushLoop()

	if logger != nil {
		logger.Info("store opened", "path", path)
	}
	return s, nil
}

// Close flushes pending state synchronously and closes the database.
// Safe to call more than once; later calls return the first result.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.wg.Wait()

		if err := s.flushNow(); err != nil && s.logger != nil {
			s.logger.Error("final state flush failed", "error", err)
		}

		if s.logger != nil {
			s.logger.Info("closing database connection")
		}
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

// State returns a deep copy of the current user state.
func (s *Store) State() *domain.UserState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// hydrate loads the last snapshot. Absent or malformed snapshots silently
// produce the empty initial state; app launch never fails on bad data.
func (s *Store) hydrate() {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(stateKey))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})

	switch {
	case errors.Is(err, badger.ErrKeyNotFound):
		s.state = domain.NewUserState()
		return
	case err != nil:
		if s.logger != nil {
			s.logger.Warn("failed to read state snapshot, starting empty", "error", err)
		}
		s.state = domain.NewUserState()
		return
	}

	state := domain.NewUserState()
	if err := json.Unmarshal(raw, state); err != nil {
		if s.logger != nil {
			s.logger.Warn("malformed state snapshot, starting empty", "error", err)
		}
		s.state = domain.NewUserState()
		return
	}

	state.Normalize()
	s.state = state
	if s.logger != nil {
		s.logger.Info("state hydrated",
			"tried", len(state.Tried),
			"want_to_go", len(state.WantToGo),
			"memos", len(state.Memos),
			"custom", len(state.Custom),
			"excluded", len(state.Excluded))
	}
}

// signalFlush schedules a background snapshot write. Non-blocking; multiple
// mutations inside one debounce window coalesce into one write.
func (s *Store) signalFlush() {
	select {
	case s.flushCh <- struct{}{}:
	default:
	}
}

// flushLoop waits for mutation signals, debounces them, and writes snapshots
// until Close is called.
func (s *Store) flushLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.done:
			return
		case <-s.flushCh:
			timer := time.NewTimer(s.debounce)
			select {
			case <-s.done:
				timer.Stop()
				return
			case <-timer.C:
			}
			if err := s.flushNow(); err != nil && s.logger != nil {
				s.logger.Error("state flush failed", "error", err)
			}
		}
	}
}

// flushNow serializes the durable state subset and replaces the previous
// snapshot, whole document, last writer wins.
func (s *Store) flushNow() error {
	s.mu.RLock()
	data, err := json.Marshal(s.state)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(stateKey), data)
	})
}

// emit broadcasts a change event when an emitter is configured.
func (s *Store) emit(eventType, pinID string) {
	if s.emitter == nil {
		return
	}
	s.emitter.Emit(ChangeEvent{Type: eventType, PinID: pinID})
}
