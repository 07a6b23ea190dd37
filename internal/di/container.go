// Package di provides dependency injection configuration for the DirectStay server.
package di

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/directstay/directstay-server/internal/config"
	"github.com/directstay/directstay-server/internal/di/providers"
	"github.com/directstay/directstay-server/internal/logger"
	"github.com/directstay/directstay-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Geocoding layer
	do.Provide(injector, providers.ProvideGeonamesClient)

	// Business services
	do.Provide(injector, providers.ProvideSubmissionService)
	do.Provide(injector, providers.ProvideReconcileService)
	do.Provide(injector, providers.ProvideSearchService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	log := do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*providers.GeonamesClientHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.SubmissionService](injector)
	_ = do.MustInvoke[*service.ReconcileService](injector)
	searchService := do.MustInvoke[*service.SearchService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Populate the search index from approved submissions at startup.
	if err := searchService.RebuildFromStore(context.Background()); err != nil {
		log.Warn("Initial search index build failed", "error", err)
	}

	return nil
}
