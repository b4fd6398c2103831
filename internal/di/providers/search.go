package providers

import (
	"github.com/samber/do/v2"

	"github.com/painmapapp/painmap-server/internal/logger"
	"github.com/painmapapp/painmap-server/internal/search"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.PinIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the in-memory Bleve pin index.
// The pin service fills it from the dataset and custom bakeries on startup.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.NewPinIndex(log.Logger)
	if err != nil {
		return nil, err
	}

	return &SearchIndexHandle{PinIndex: index}, nil
}
