package sqlite

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/directstay/directstay-server/internal/domain"
	"github.com/directstay/directstay-server/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	st, err := Open(filepath.Join(t.TempDir(), "test.db"), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func testSubmission(id, websiteURL string) *domain.Submission {
	sub := &domain.Submission{
		ID:          id,
		BrandName:   "Casa do Mar",
		WebsiteURL:  websiteURL,
		Email:       "hosts@casadomar.example.com",
		Description: "Beach houses on the Algarve coast",
		Countries:   []string{"Portugal"},
		CitiesRegions: []domain.CityRegion{
			{Name: "Lisbon"},
			{Name: "Faro", GeonameID: 2268337},
		},
		Status:   domain.StatusPending,
		PlanTier: domain.PlanBasic,
	}
	sub.InitTimestamps()
	return sub
}

func TestCreateAndGetSubmission(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	sub := testSubmission("sub-1", "https://casadomar.example.com")
	require.NoError(t, st.CreateSubmission(ctx, sub))

	got, err := st.GetSubmission(ctx, "sub-1")
	require.NoError(t, err)

	assert.Equal(t, sub.BrandName, got.BrandName)
	assert.Equal(t, sub.WebsiteURL, got.WebsiteURL)
	assert.Equal(t, []string{"Portugal"}, got.Countries)
	require.Len(t, got.CitiesRegions, 2)
	assert.Equal(t, int64(2268337), got.CitiesRegions[1].GeonameID)
	assert.Equal(t, domain.StatusPending, got.Status)
	assert.Equal(t, domain.PlanBasic, got.PlanTier)
	assert.WithinDuration(t, sub.CreatedAt, got.CreatedAt, time.Millisecond)
}

func TestCreateSubmission_DuplicateID(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.CreateSubmission(ctx, testSubmission("sub-1", "https://a.example.com")))

	err := st.CreateSubmission(ctx, testSubmission("sub-1", "https://b.example.com"))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestCreateSubmission_DuplicateWebsiteURL(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.CreateSubmission(ctx, testSubmission("sub-1", "https://a.example.com")))

	err := st.CreateSubmission(ctx, testSubmission("sub-2", "https://a.example.com"))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestGetSubmission_NotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.GetSubmission(context.Background(), "sub-missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateSubmission(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	sub := testSubmission("sub-1", "https://a.example.com")
	require.NoError(t, st.CreateSubmission(ctx, sub))

	sub.BrandName = "Casa do Mar Premium"
	sub.PlanTier = domain.PlanFeatured
	sub.Countries = append(sub.Countries, "Spain")
	sub.Touch()
	require.NoError(t, st.UpdateSubmission(ctx, sub))

	got, err := st.GetSubmission(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, "Casa do Mar Premium", got.BrandName)
	assert.Equal(t, domain.PlanFeatured, got.PlanTier)
	assert.Equal(t, []string{"Portugal", "Spain"}, got.Countries)

	missing := testSubmission("sub-missing", "https://m.example.com")
	assert.ErrorIs(t, st.UpdateSubmission(ctx, missing), store.ErrNotFound)
}

func TestDeleteSubmission(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.CreateSubmission(ctx, testSubmission("sub-1", "https://a.example.com")))
	require.NoError(t, st.DeleteSubmission(ctx, "sub-1"))

	_, err := st.GetSubmission(ctx, "sub-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, st.DeleteSubmission(ctx, "sub-1"), store.ErrNotFound)
}

func TestListSubmissions(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for i, entry := range []struct {
		id     string
		status domain.SubmissionStatus
	}{
		{"sub-1", domain.StatusPending},
		{"sub-2", domain.StatusApproved},
		{"sub-3", domain.StatusApproved},
		{"sub-4", domain.StatusRejected},
	} {
		sub := testSubmission(entry.id, "https://"+entry.id+".example.com")
		sub.Status = entry.status
		// Stagger creation times so newest-first ordering is observable.
		sub.CreatedAt = sub.CreatedAt.Add(time.Duration(i) * time.Second)
		require.NoError(t, st.CreateSubmission(ctx, sub))
	}

	all, err := st.ListSubmissions(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "sub-4", all[0].ID, "newest first")

	approved, err := st.ListSubmissions(ctx, domain.StatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 2)
	assert.Equal(t, "sub-3", approved[0].ID)
	assert.Equal(t, "sub-2", approved[1].ID)

	fromSource, err := st.ListApprovedSubmissions(ctx)
	require.NoError(t, err)
	assert.Len(t, fromSource, 2)
}

func TestSetSubmissionStatus(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	timeNow = func() time.Time { return fixed }
	t.Cleanup(func() { timeNow = time.Now })

	sub := testSubmission("sub-1", "https://a.example.com")
	require.NoError(t, st.CreateSubmission(ctx, sub))

	require.NoError(t, st.SetSubmissionStatus(ctx, "sub-1", domain.StatusApproved))

	got, err := st.GetSubmission(ctx, "sub-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, got.Status)
	assert.True(t, got.UpdatedAt.Equal(fixed))

	err = st.SetSubmissionStatus(ctx, "sub-missing", domain.StatusApproved)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
