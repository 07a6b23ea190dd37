package providers

import (
	"github.com/samber/do/v2"

	"github.com/directstay/directstay-server/internal/logger"
	"github.com/directstay/directstay-server/internal/service"
)

// ProvideSubmissionService provides the submission workflow service.
func ProvideSubmissionService(i do.Injector) (*service.SubmissionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSubmissionService(storeHandle.Store, log.Logger), nil
}

// ProvideReconcileService provides the geography reconciliation service.
func ProvideReconcileService(i do.Injector) (*service.ReconcileService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	geoHandle := do.MustInvoke[*GeonamesClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReconcileService(storeHandle.Store, geoHandle.Client, service.NewCityCache(), log.Logger), nil
}

// ProvideSearchService provides the listing search service and wires it
// into the submission workflow so status changes reach the index.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	reconcileService := do.MustInvoke[*service.ReconcileService](i)
	submissionService := do.MustInvoke[*service.SubmissionService](i)
	log := do.MustInvoke[*logger.Logger](i)

	searchService := service.NewSearchService(indexHandle.Index, storeHandle.Store, reconcileService.Cache(), log.Logger)
	submissionService.SetIndexer(searchService)

	return searchService, nil
}
