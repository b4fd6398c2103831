// Package search provides full-text pin search backed by an in-memory Bleve
// index. The dataset is small and reload is cheap, so the index is rebuilt
// from scratch whenever the pin set changes instead of being persisted.
package search

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/painmapapp/painmap-server/internal/domain"
)

// PinIndex wraps a Bleve index over the current pin set.
//
// Thread safety: all public methods are safe for concurrent use. The mutex
// protects against queries hitting a half-swapped index during rebuild.
type PinIndex struct {
	index  bleve.Index
	logger *slog.Logger
	mu     sync.RWMutex
}

// NewPinIndex creates an empty in-memory index.
func NewPinIndex(logger *slog.Logger) (*PinIndex, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &PinIndex{
		index:  index,
		logger: logger,
	}, nil
}

// Close closes the index and releases resources.
func (s *PinIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// Rebuild replaces the index contents with the given pins.
// Called at startup and after every dataset reload or custom-bakery change.
func (s *PinIndex) Rebuild(pins []domain.Pin) error {
	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	const batchSize = 500
	for i := 0; i < len(pins); i += batchSize {
		end := min(i+batchSize, len(pins))

		batch := fresh.NewBatch()
		for _, pin := range pins[i:end] {
			if err := batch.Index(pin.ID, pinDocument(pin)); err != nil {
				fresh.Close()
				return fmt.Errorf("batch index %s: %w", pin.ID, err)
			}
		}
		if err := fresh.Batch(batch); err != nil {
			fresh.Close()
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}

	s.mu.Lock()
	old := s.index
	s.index = fresh
	s.mu.Unlock()

	if err := old.Close(); err != nil {
		s.logger.Warn("failed to close old index", "error", err)
	}

	s.logger.Debug("pin index rebuilt", "pins", len(pins))
	return nil
}

// Upsert indexes a single pin.
func (s *PinIndex) Upsert(pin domain.Pin) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Index(pin.ID, pinDocument(pin))
}

// Delete removes a pin from the index.
func (s *PinIndex) Delete(pinID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(pinID)
}

// DocumentCount returns the number of indexed pins.
func (s *PinIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// pinDocument maps a pin to the indexed field names.
func pinDocument(pin domain.Pin) map[string]any {
	return map[string]any{
		"id":              pin.ID,
		"name":            pin.Name,
		"name_reading":    pin.NameReading,
		"address":         pin.Address,
		"characteristics": pin.Characteristics,
		"type":            string(pin.Type),
		"region":          pin.Region,
	}
}
