package search

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// Index wraps a Bleve index with listing-specific operations.
//
// Thread safety: all public methods are safe for concurrent use. The
// mutex guards the index handle during rebuilds.
type Index struct {
	index bleve.Index
	path  string
	logger *slog.Logger
	mu    sync.RWMutex
}

// Open creates or opens the listing search index at path. A corrupted
// index is removed and recreated; listings are re-indexed from the store
// on startup anyway, so nothing is lost.
func Open(path string, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var index bleve.Index
	var err error

	if _, statErr := os.Stat(path); statErr == nil {
		index, err = bleve.Open(path)
		if err != nil {
			logger.Warn("failed to open existing search index, recreating",
				"path", path,
				"error", err,
			)
			if rmErr := os.RemoveAll(path); rmErr != nil {
				return nil, fmt.Errorf("remove corrupted index: %w", rmErr)
			}
		}
	}

	if index == nil {
		index, err = bleve.New(path, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("create search index: %w", err)
		}
		logger.Info("created search index", "path", path)
	}

	return &Index{index: index, path: path, logger: logger}, nil
}

// InMemory creates an ephemeral index for tests.
func InMemory() (*Index, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create in-memory index: %w", err)
	}
	return &Index{index: index, logger: slog.New(slog.DiscardHandler)}, nil
}

// Close closes the underlying index.
func (i *Index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.index.Close()
}

// IndexListing adds or updates a listing document.
func (i *Index) IndexListing(doc *ListingDocument) error {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.index.Index(doc.ID, doc.ToMap())
}

// DeleteListing removes a listing from the index.
func (i *Index) DeleteListing(id string) error {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.index.Delete(id)
}

// Rebuild replaces the index contents with the given documents using a
// single batch.
func (i *Index) Rebuild(docs []*ListingDocument) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	batch := i.index.NewBatch()

	// Drop everything currently indexed.
	existing, err := i.index.DocCount()
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	if existing > 0 {
		all := bleve.NewSearchRequest(bleve.NewMatchAllQuery())
		all.Size = int(existing)
		all.Fields = []string{"id"}
		res, err := i.index.Search(all)
		if err != nil {
			return fmt.Errorf("list documents: %w", err)
		}
		for _, hit := range res.Hits {
			batch.Delete(hit.ID)
		}
	}

	for _, doc := range docs {
		if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
			return fmt.Errorf("batch index %s: %w", doc.ID, err)
		}
	}

	if err := i.index.Batch(batch); err != nil {
		return fmt.Errorf("apply batch: %w", err)
	}

	i.logger.Info("search index rebuilt", "listings", len(docs))
	return nil
}

// DocCount returns the number of indexed listings.
func (i *Index) DocCount() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.index.DocCount()
}
