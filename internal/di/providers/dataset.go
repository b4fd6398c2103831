package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/painmapapp/painmap-server/internal/config"
	"github.com/painmapapp/painmap-server/internal/dataset"
	"github.com/painmapapp/painmap-server/internal/geo"
	"github.com/painmapapp/painmap-server/internal/logger"
	"github.com/painmapapp/painmap-server/internal/service"
)

// ProvideDataset provides the loaded bakery dataset.
func ProvideDataset(i do.Injector) (*dataset.Loader, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	loader := dataset.New(log.Logger, geo.Classify, cfg.Dataset.Dir)
	if err := loader.Load(); err != nil {
		return nil, err
	}

	source := "embedded"
	if cfg.Dataset.Dir != "" {
		source = cfg.Dataset.Dir
	}
	log.Info("Dataset loaded", "pins", loader.Count(), "source", source)

	return loader, nil
}

// DatasetWatcherHandle wraps the dataset watcher with its context for lifecycle management.
// The watcher is nil when no dataset directory override is configured.
type DatasetWatcherHandle struct {
	Watcher *dataset.Watcher
	cancel  context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *DatasetWatcherHandle) Shutdown() error {
	if h.cancel != nil {
		h.cancel()
	}
	return nil
}

// ProvideDatasetWatcher provides the dataset file watcher.
// Each reload rebuilds the search index so query results track the files on disk.
func ProvideDatasetWatcher(i do.Injector) (*DatasetWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Dataset.Dir == "" || !cfg.Dataset.Watch {
		return &DatasetWatcherHandle{}, nil
	}

	loader := do.MustInvoke[*dataset.Loader](i)
	pins := do.MustInvoke[*service.PinService](i)

	watcher, err := dataset.NewWatcher(loader, log.Logger, func() {
		if err := pins.RebuildIndex(); err != nil {
			log.Error("Search reindex after dataset reload failed", "error", err)
		}
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := watcher.Start(ctx); err != nil {
			log.Error("Dataset watcher stopped", "error", err)
		}
	}()

	log.Info("Dataset watcher started", "dir", cfg.Dataset.Dir)

	return &DatasetWatcherHandle{Watcher: watcher, cancel: cancel}, nil
}
