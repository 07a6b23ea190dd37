package providers

import (
	"github.com/samber/do/v2"

	"github.com/directstay/directstay-server/internal/config"
	"github.com/directstay/directstay-server/internal/logger"
	"github.com/directstay/directstay-server/internal/search"
)

// SearchIndexHandle wraps the bleve index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the listing search index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	index, err := search.Open(cfg.SearchIndexPath(), log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Search index opened", "path", cfg.SearchIndexPath())

	return &SearchIndexHandle{Index: index}, nil
}
