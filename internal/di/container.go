// Package di provides dependency injection configuration for the PainMap server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/painmapapp/painmap-server/internal/config"
	"github.com/painmapapp/painmap-server/internal/dataset"
	"github.com/painmapapp/painmap-server/internal/di/providers"
	"github.com/painmapapp/painmap-server/internal/logger"
	"github.com/painmapapp/painmap-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)

	// State layer
	do.Provide(injector, providers.ProvideSSEManager)
	do.Provide(injector, providers.ProvideStore)

	// Dataset layer
	do.Provide(injector, providers.ProvideDataset)
	do.Provide(injector, providers.ProvideDatasetWatcher)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)

	// Business services
	do.Provide(injector, providers.ProvidePinService)
	do.Provide(injector, providers.ProvideMarkService)
	do.Provide(injector, providers.ProvideMemoService)
	do.Provide(injector, providers.ProvideCustomBakeryService)
	do.Provide(injector, providers.ProvideFilterService)
	do.Provide(injector, providers.ProvideStatsService)
	do.Provide(injector, providers.ProvideLinkService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.SSEManagerHandle](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*dataset.Loader](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.PinService](injector)
	_ = do.MustInvoke[*service.MarkService](injector)
	_ = do.MustInvoke[*service.MemoService](injector)
	_ = do.MustInvoke[*service.CustomBakeryService](injector)
	_ = do.MustInvoke[*service.FilterService](injector)
	_ = do.MustInvoke[*service.StatsService](injector)
	_ = do.MustInvoke[*service.LinkService](injector)

	// Workers
	_ = do.MustInvoke[*providers.DatasetWatcherHandle](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
