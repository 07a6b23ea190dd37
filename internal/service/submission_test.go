package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/directstay/directstay-server/internal/domain"
	"github.com/directstay/directstay-server/internal/errors"
	"github.com/directstay/directstay-server/internal/store/sqlite"
)

// fakeIndexer records index traffic so tests can assert the search
// index is kept in sync with the review workflow.
type fakeIndexer struct {
	indexed []string
	removed []string
}

func (f *fakeIndexer) IndexSubmission(sub *domain.Submission) error {
	f.indexed = append(f.indexed, sub.ID)
	return nil
}

func (f *fakeIndexer) RemoveSubmission(id string) error {
	f.removed = append(f.removed, id)
	return nil
}

func newTestSubmissionService(t *testing.T) (*SubmissionService, *fakeIndexer) {
	t.Helper()

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	svc := NewSubmissionService(st, testLogger())
	indexer := &fakeIndexer{}
	svc.SetIndexer(indexer)
	return svc, indexer
}

func validCreateRequest() CreateSubmissionRequest {
	return CreateSubmissionRequest{
		BrandName:  "Casa do Mar",
		WebsiteURL: "https://casadomar.example.com",
		Email:      "hosts@casadomar.example.com",
		Countries:  []string{"Portugal"},
		CitiesRegions: []CityRegionInput{
			{Name: "Lisbon"},
			{Name: "Porto"},
		},
	}
}

func TestCreateSubmission(t *testing.T) {
	svc, _ := newTestSubmissionService(t)

	sub, err := svc.CreateSubmission(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, sub.ID)
	assert.Contains(t, sub.ID, "sub-")
	assert.Equal(t, domain.StatusPending, sub.Status)
	assert.Equal(t, domain.PlanBasic, sub.PlanTier, "plan tier defaults to basic")
	assert.False(t, sub.CreatedAt.IsZero())

	stored, err := svc.GetSubmission(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "Casa do Mar", stored.BrandName)
	require.Len(t, stored.CitiesRegions, 2)
	assert.Equal(t, "Lisbon", stored.CitiesRegions[0].Name)
}

func TestCreateSubmission_ValidationErrors(t *testing.T) {
	svc, _ := newTestSubmissionService(t)

	tests := []struct {
		name   string
		mutate func(*CreateSubmissionRequest)
	}{
		{"missing brand name", func(r *CreateSubmissionRequest) { r.BrandName = "" }},
		{"brand name too short", func(r *CreateSubmissionRequest) { r.BrandName = "x" }},
		{"missing website url", func(r *CreateSubmissionRequest) { r.WebsiteURL = "" }},
		{"malformed website url", func(r *CreateSubmissionRequest) { r.WebsiteURL = "not a url" }},
		{"no countries", func(r *CreateSubmissionRequest) { r.Countries = nil }},
		{"malformed email", func(r *CreateSubmissionRequest) { r.Email = "nope" }},
		{"unknown plan tier", func(r *CreateSubmissionRequest) { r.PlanTier = "platinum" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)

			_, err := svc.CreateSubmission(context.Background(), req)
			assert.ErrorIs(t, err, errors.ErrValidation)
		})
	}
}

func TestCreateSubmission_BlankCountriesRejected(t *testing.T) {
	svc, _ := newTestSubmissionService(t)

	req := validCreateRequest()
	req.Countries = []string{"   ", "  "}

	_, err := svc.CreateSubmission(context.Background(), req)
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestCreateSubmission_DuplicateWebsite(t *testing.T) {
	svc, _ := newTestSubmissionService(t)

	_, err := svc.CreateSubmission(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.CreateSubmission(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, errors.ErrAlreadyExists)
}

func TestGetSubmission_NotFound(t *testing.T) {
	svc, _ := newTestSubmissionService(t)

	_, err := svc.GetSubmission(context.Background(), "sub-missing")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestApprove_IndexesListing(t *testing.T) {
	svc, indexer := newTestSubmissionService(t)

	sub, err := svc.CreateSubmission(context.Background(), validCreateRequest())
	require.NoError(t, err)

	approved, err := svc.Approve(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, approved.Status)
	assert.Equal(t, []string{sub.ID}, indexer.indexed)

	stored, err := svc.GetSubmission(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, stored.Status)
}

func TestReject_RemovesFromIndex(t *testing.T) {
	svc, indexer := newTestSubmissionService(t)

	sub, err := svc.CreateSubmission(context.Background(), validCreateRequest())
	require.NoError(t, err)

	rejected, err := svc.Reject(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, rejected.Status)
	assert.Equal(t, []string{sub.ID}, indexer.removed)
}

func TestReopen(t *testing.T) {
	svc, indexer := newTestSubmissionService(t)

	sub, err := svc.CreateSubmission(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), sub.ID)
	require.NoError(t, err)

	reopened, err := svc.Reopen(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, reopened.Status)

	// Reopening pulls the listing out of the public index.
	assert.Equal(t, []string{sub.ID}, indexer.removed)
}

func TestTransition_Conflicts(t *testing.T) {
	svc, _ := newTestSubmissionService(t)

	sub, err := svc.CreateSubmission(context.Background(), validCreateRequest())
	require.NoError(t, err)

	// Pending cannot reopen to pending.
	_, err = svc.Reopen(context.Background(), sub.ID)
	assert.ErrorIs(t, err, errors.ErrConflict)

	_, err = svc.Approve(context.Background(), sub.ID)
	require.NoError(t, err)

	// Approved cannot be approved again or rejected directly.
	_, err = svc.Approve(context.Background(), sub.ID)
	assert.ErrorIs(t, err, errors.ErrConflict)
	_, err = svc.Reject(context.Background(), sub.ID)
	assert.ErrorIs(t, err, errors.ErrConflict)
}

func TestListSubmissions_StatusFilter(t *testing.T) {
	svc, _ := newTestSubmissionService(t)

	first, err := svc.CreateSubmission(context.Background(), validCreateRequest())
	require.NoError(t, err)

	second := validCreateRequest()
	second.BrandName = "Alpine Hideaways"
	second.WebsiteURL = "https://alpine.example.com"
	_, err = svc.CreateSubmission(context.Background(), second)
	require.NoError(t, err)

	_, err = svc.Approve(context.Background(), first.ID)
	require.NoError(t, err)

	pending, err := svc.ListSubmissions(context.Background(), domain.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := svc.ListSubmissions(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.ListSubmissions(context.Background(), "bogus")
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestDeleteSubmission(t *testing.T) {
	svc, indexer := newTestSubmissionService(t)

	sub, err := svc.CreateSubmission(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSubmission(context.Background(), sub.ID))
	assert.Equal(t, []string{sub.ID}, indexer.removed)

	_, err = svc.GetSubmission(context.Background(), sub.ID)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	err = svc.DeleteSubmission(context.Background(), "sub-missing")
	assert.ErrorIs(t, err, errors.ErrNotFound)
}
