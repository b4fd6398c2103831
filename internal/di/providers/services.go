package providers

import (
	"github.com/samber/do/v2"

	"github.com/painmapapp/painmap-server/internal/dataset"
	"github.com/painmapapp/painmap-server/internal/logger"
	"github.com/painmapapp/painmap-server/internal/service"
)

// ProvidePinService provides the pin listing service and builds the initial search index.
func ProvidePinService(i do.Injector) (*service.PinService, error) {
	loader := do.MustInvoke[*dataset.Loader](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	pins, err := service.NewPinService(loader, storeHandle.Store, indexHandle.PinIndex, log.Logger)
	if err != nil {
		return nil, err
	}

	docs, _ := pins.IndexDocumentCount()
	log.Info("Search index built", "documents", docs)

	return pins, nil
}

// ProvideMarkService provides the tried, want-to-go, and excluded mark service.
func ProvideMarkService(i do.Injector) (*service.MarkService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	pins := do.MustInvoke[*service.PinService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMarkService(storeHandle.Store, pins, log.Logger), nil
}

// ProvideMemoService provides the memo service.
func ProvideMemoService(i do.Injector) (*service.MemoService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	pins := do.MustInvoke[*service.PinService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMemoService(storeHandle.Store, pins, log.Logger), nil
}

// ProvideCustomBakeryService provides the custom bakery service.
func ProvideCustomBakeryService(i do.Injector) (*service.CustomBakeryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	pins := do.MustInvoke[*service.PinService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCustomBakeryService(storeHandle.Store, pins, log.Logger), nil
}

// ProvideFilterService provides the filter state service.
func ProvideFilterService(i do.Injector) (*service.FilterService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)

	return service.NewFilterService(storeHandle.Store), nil
}

// ProvideStatsService provides the aggregate stats service.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	pins := do.MustInvoke[*service.PinService](i)

	return service.NewStatsService(storeHandle.Store, pins), nil
}

// ProvideLinkService provides the external map link service.
func ProvideLinkService(i do.Injector) (*service.LinkService, error) {
	pins := do.MustInvoke[*service.PinService](i)

	return service.NewLinkService(pins), nil
}
