package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/directstay/directstay-server/internal/country"
	"github.com/directstay/directstay-server/internal/domain"
	"github.com/directstay/directstay-server/internal/errors"
	"github.com/directstay/directstay-server/internal/search"
	"github.com/directstay/directstay-server/internal/store"
)

// SearchService maintains the full-text listing index over approved
// submissions and answers directory search queries.
type SearchService struct {
	index  *search.Index
	source store.SubmissionSource
	cache  *CityCache
	logger *slog.Logger
}

// NewSearchService creates a search service over the given index.
func NewSearchService(index *search.Index, source store.SubmissionSource, cache *CityCache, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		source: source,
		cache:  cache,
		logger: logger,
	}
}

// IndexSubmission indexes an approved submission. Non-approved
// submissions are removed instead so stale listings never surface.
func (s *SearchService) IndexSubmission(sub *domain.Submission) error {
	if sub.Status != domain.StatusApproved {
		return s.index.DeleteListing(sub.ID)
	}
	doc := search.DocumentFromSubmission(sub, s.canonicalCities(sub))
	return s.index.IndexListing(doc)
}

// RemoveSubmission drops a listing from the index.
func (s *SearchService) RemoveSubmission(id string) error {
	return s.index.DeleteListing(id)
}

// Search runs a directory search over approved listings.
func (s *SearchService) Search(_ context.Context, params search.Params) (*search.Result, error) {
	result, err := s.index.Search(params)
	if err != nil {
		return nil, errors.Internal("search listings", err)
	}
	return result, nil
}

// RebuildFromStore reindexes every approved submission from scratch.
// Called at startup and after bulk reconciliation so canonical city
// names reach the index.
func (s *SearchService) RebuildFromStore(ctx context.Context) error {
	subs, err := s.source.ListApprovedSubmissions(ctx)
	if err != nil {
		return errors.Internal("list approved submissions", err)
	}

	docs := make([]*search.ListingDocument, 0, len(subs))
	for _, sub := range subs {
		docs = append(docs, search.DocumentFromSubmission(sub, s.canonicalCities(sub)))
	}

	if err := s.index.Rebuild(docs); err != nil {
		return errors.Internal("rebuild search index", err)
	}

	s.logger.Info("search index rebuilt", "listings", len(docs))
	return nil
}

// DocumentCount returns the number of indexed listings.
func (s *SearchService) DocumentCount() (uint64, error) {
	return s.index.DocCount()
}

// canonicalCities maps a submission's declared cities to their validated
// canonical names where the session cache knows them, falling back to
// the raw declared name otherwise.
func (s *SearchService) canonicalCities(sub *domain.Submission) []string {
	if len(sub.CitiesRegions) == 0 {
		return nil
	}

	names := make([]string, 0, len(sub.CitiesRegions))
	for _, cr := range sub.CitiesRegions {
		name := cr.Name
		if s.cache != nil {
			name = s.lookupCanonical(sub, cr)
		}
		names = append(names, name)
	}
	return names
}

func (s *SearchService) lookupCanonical(sub *domain.Submission, cr domain.CityRegion) string {
	for _, c := range sub.Countries {
		for _, resolved := range s.cache.CitiesForCountry(country.NormalizeDisplayName(c)) {
			if cr.GeonameID != 0 && resolved.GeonameID == cr.GeonameID {
				return resolved.CanonicalName
			}
			if strings.EqualFold(resolved.Name, cr.Name) {
				return resolved.CanonicalName
			}
		}
	}
	return cr.Name
}
