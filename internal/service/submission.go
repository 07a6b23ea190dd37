package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/directstay/directstay-server/internal/domain"
	"github.com/directstay/directstay-server/internal/errors"
	"github.com/directstay/directstay-server/internal/id"
	"github.com/directstay/directstay-server/internal/store"
	"github.com/directstay/directstay-server/internal/validation"
)

// ListingIndexer keeps the search index in sync with submission changes.
// Implemented by SearchService; a nil indexer disables indexing.
type ListingIndexer interface {
	IndexSubmission(sub *domain.Submission) error
	RemoveSubmission(id string) error
}

// SubmissionService orchestrates the submission workflow: host-facing
// creation, admin review, and the status transitions between them.
type SubmissionService struct {
	store     store.SubmissionStore
	indexer   ListingIndexer
	logger    *slog.Logger
	validator *validation.Validator
}

// NewSubmissionService creates a new submission service.
func NewSubmissionService(st store.SubmissionStore, logger *slog.Logger) *SubmissionService {
	return &SubmissionService{
		store:     st,
		logger:    logger,
		validator: validation.New(),
	}
}

// SetIndexer wires the search indexer. Set after construction to avoid a
// circular dependency with SearchService.
func (s *SubmissionService) SetIndexer(indexer ListingIndexer) {
	s.indexer = indexer
}

// CityRegionInput accepts the loose city shapes the submission form may
// send: a bare string or an object with an optional known geoname id.
// Parsing into the uniform domain.CityRegion happens here, once, at the
// boundary.
type CityRegionInput struct {
	Name      string `json:"name" validate:"required,min=1,max=120"`
	GeonameID int64  `json:"geoname_id,omitempty" validate:"gte=0"`
}

// CreateSubmissionRequest contains fields for a new directory submission.
type CreateSubmissionRequest struct {
	BrandName     string            `json:"brand_name" validate:"required,min=2,max=120"`
	WebsiteURL    string            `json:"website_url" validate:"required,url,max=500"`
	Email         string            `json:"email,omitempty" validate:"omitempty,email"`
	Description   string            `json:"description,omitempty" validate:"max=2000"`
	Countries     []string          `json:"countries" validate:"required,min=1,max=10,dive,min=2,max=80"`
	CitiesRegions []CityRegionInput `json:"cities_regions,omitempty" validate:"max=25,dive"`
	PlanTier      string            `json:"plan_tier,omitempty" validate:"omitempty,oneof=basic featured"`
}

// CreateSubmission validates and stores a new pending submission.
func (s *SubmissionService) CreateSubmission(ctx context.Context, req CreateSubmissionRequest) (*domain.Submission, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	subID, err := id.Generate("sub")
	if err != nil {
		return nil, errors.Internal("generate submission id", err)
	}

	tier := domain.PlanTier(req.PlanTier)
	if req.PlanTier == "" {
		tier = domain.PlanBasic
	}

	cities := make([]domain.CityRegion, 0, len(req.CitiesRegions))
	for _, in := range req.CitiesRegions {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			continue
		}
		cities = append(cities, domain.CityRegion{Name: name, GeonameID: in.GeonameID})
	}

	countries := make([]string, 0, len(req.Countries))
	for _, c := range req.Countries {
		if trimmed := strings.TrimSpace(c); trimmed != "" {
			countries = append(countries, trimmed)
		}
	}
	if len(countries) == 0 {
		return nil, errors.Validation("at least one country is required")
	}

	sub := &domain.Submission{
		ID:            subID,
		BrandName:     strings.TrimSpace(req.BrandName),
		WebsiteURL:    strings.TrimSpace(req.WebsiteURL),
		Email:         strings.TrimSpace(req.Email),
		Description:   strings.TrimSpace(req.Description),
		Countries:     countries,
		CitiesRegions: cities,
		Status:        domain.StatusPending,
		PlanTier:      tier,
	}
	sub.InitTimestamps()

	if err := s.store.CreateSubmission(ctx, sub); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.AlreadyExists("a submission for this website already exists")
		}
		return nil, errors.Internal("create submission", err)
	}

	s.logger.Info("submission created",
		"id", sub.ID,
		"brand", sub.BrandName,
		"countries", len(sub.Countries),
	)
	return sub, nil
}

// GetSubmission returns a submission by ID.
func (s *SubmissionService) GetSubmission(ctx context.Context, subID string) (*domain.Submission, error) {
	sub, err := s.store.GetSubmission(ctx, subID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("submission %s not found", subID)
		}
		return nil, errors.Internal("get submission", err)
	}
	return sub, nil
}

// ListSubmissions returns submissions filtered by status. An empty status
// returns everything.
func (s *SubmissionService) ListSubmissions(ctx context.Context, status domain.SubmissionStatus) ([]*domain.Submission, error) {
	if status != "" && !status.Valid() {
		return nil, errors.Validation("invalid status filter")
	}
	subs, err := s.store.ListSubmissions(ctx, status)
	if err != nil {
		return nil, errors.Internal("list submissions", err)
	}
	return subs, nil
}

// Approve transitions a pending submission into the public directory and
// indexes it for search.
func (s *SubmissionService) Approve(ctx context.Context, subID string) (*domain.Submission, error) {
	return s.transition(ctx, subID, domain.StatusApproved)
}

// Reject marks a pending submission as rejected and removes any search
// presence.
func (s *SubmissionService) Reject(ctx context.Context, subID string) (*domain.Submission, error) {
	return s.transition(ctx, subID, domain.StatusRejected)
}

// Reopen returns an approved or rejected submission to pending for
// re-review. The listing leaves the public directory until re-approved.
func (s *SubmissionService) Reopen(ctx context.Context, subID string) (*domain.Submission, error) {
	return s.transition(ctx, subID, domain.StatusPending)
}

// DeleteSubmission removes a submission entirely.
func (s *SubmissionService) DeleteSubmission(ctx context.Context, subID string) error {
	if err := s.store.DeleteSubmission(ctx, subID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFoundf("submission %s not found", subID)
		}
		return errors.Internal("delete submission", err)
	}

	if s.indexer != nil {
		if err := s.indexer.RemoveSubmission(subID); err != nil {
			s.logger.Warn("failed to remove submission from search index",
				"id", subID,
				"error", err,
			)
		}
	}

	s.logger.Info("submission deleted", "id", subID)
	return nil
}

// transition applies a status change after checking workflow rules.
func (s *SubmissionService) transition(ctx context.Context, subID string, next domain.SubmissionStatus) (*domain.Submission, error) {
	sub, err := s.GetSubmission(ctx, subID)
	if err != nil {
		return nil, err
	}

	if !sub.CanTransitionTo(next) {
		return nil, errors.Conflictf("cannot move submission from %s to %s", sub.Status, next)
	}

	if err := s.store.SetSubmissionStatus(ctx, subID, next); err != nil {
		return nil, errors.Internal("update submission status", err)
	}
	sub.Status = next
	sub.Touch()

	if s.indexer != nil {
		var indexErr error
		if next == domain.StatusApproved {
			indexErr = s.indexer.IndexSubmission(sub)
		} else {
			indexErr = s.indexer.RemoveSubmission(sub.ID)
		}
		if indexErr != nil {
			s.logger.Warn("failed to update search index",
				"id", sub.ID,
				"status", next,
				"error", indexErr,
			)
		}
	}

	s.logger.Info("submission status changed",
		"id", sub.ID,
		"status", next,
	)
	return sub, nil
}
