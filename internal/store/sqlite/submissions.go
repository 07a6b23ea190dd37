package sqlite

import (
	"context"
	"database/sql"
	"encoding/json/v2"
	"fmt"
	"strings"

	"github.com/directstay/directstay-server/internal/domain"
	"github.com/directstay/directstay-server/internal/store"
)

// submissionColumns is the ordered list of columns selected in submission
// queries. Must match the scan order in scanSubmission.
const submissionColumns = `id, brand_name, website_url, email, description,
	countries, cities_regions, status, plan_tier, created_at, updated_at`

// scanSubmission scans a row into a domain.Submission.
func scanSubmission(scanner interface{ Scan(dest ...any) error }) (*domain.Submission, error) {
	var sub domain.Submission

	var (
		countriesJSON string
		citiesJSON    string
		status        string
		planTier      string
		createdAt     string
		updatedAt     string
	)

	err := scanner.Scan(
		&sub.ID,
		&sub.BrandName,
		&sub.WebsiteURL,
		&sub.Email,
		&sub.Description,
		&countriesJSON,
		&citiesJSON,
		&status,
		&planTier,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(countriesJSON), &sub.Countries); err != nil {
		return nil, fmt.Errorf("decode countries: %w", err)
	}
	if err := json.Unmarshal([]byte(citiesJSON), &sub.CitiesRegions); err != nil {
		return nil, fmt.Errorf("decode cities_regions: %w", err)
	}

	sub.Status = domain.SubmissionStatus(status)
	sub.PlanTier = domain.PlanTier(planTier)

	if sub.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if sub.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &sub, nil
}

// CreateSubmission inserts a new submission.
// Returns store.ErrAlreadyExists on a duplicate ID or website URL.
func (s *Store) CreateSubmission(ctx context.Context, sub *domain.Submission) error {
	countriesJSON, err := json.Marshal(sub.Countries)
	if err != nil {
		return fmt.Errorf("encode countries: %w", err)
	}
	citiesJSON, err := json.Marshal(sub.CitiesRegions)
	if err != nil {
		return fmt.Errorf("encode cities_regions: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO submissions (
			id, brand_name, website_url, email, description,
			countries, cities_regions, status, plan_tier, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID,
		sub.BrandName,
		sub.WebsiteURL,
		sub.Email,
		sub.Description,
		string(countriesJSON),
		string(citiesJSON),
		string(sub.Status),
		string(sub.PlanTier),
		formatTime(sub.CreatedAt),
		formatTime(sub.UpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetSubmission retrieves a submission by ID.
// Returns store.ErrNotFound when the submission does not exist.
func (s *Store) GetSubmission(ctx context.Context, id string) (*domain.Submission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id = ?`, id)

	sub, err := scanSubmission(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// UpdateSubmission replaces a submission's stored fields.
// Returns store.ErrNotFound when the submission does not exist.
func (s *Store) UpdateSubmission(ctx context.Context, sub *domain.Submission) error {
	countriesJSON, err := json.Marshal(sub.Countries)
	if err != nil {
		return fmt.Errorf("encode countries: %w", err)
	}
	citiesJSON, err := json.Marshal(sub.CitiesRegions)
	if err != nil {
		return fmt.Errorf("encode cities_regions: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE submissions SET
			brand_name = ?, website_url = ?, email = ?, description = ?,
			countries = ?, cities_regions = ?, status = ?, plan_tier = ?, updated_at = ?
		WHERE id = ?`,
		sub.BrandName,
		sub.WebsiteURL,
		sub.Email,
		sub.Description,
		string(countriesJSON),
		string(citiesJSON),
		string(sub.Status),
		string(sub.PlanTier),
		formatTime(sub.UpdatedAt),
		sub.ID,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteSubmission removes a submission.
// Returns store.ErrNotFound when the submission does not exist.
func (s *Store) DeleteSubmission(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM submissions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListSubmissions returns submissions filtered by status, newest first.
// An empty status returns all submissions.
func (s *Store) ListSubmissions(ctx context.Context, status domain.SubmissionStatus) ([]*domain.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM submissions`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*domain.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// ListApprovedSubmissions implements the store.SubmissionSource contract
// consumed by the reconciliation engine.
func (s *Store) ListApprovedSubmissions(ctx context.Context) ([]*domain.Submission, error) {
	return s.ListSubmissions(ctx, domain.StatusApproved)
}

// SetSubmissionStatus updates only the review status and timestamp.
// Returns store.ErrNotFound when the submission does not exist.
func (s *Store) SetSubmissionStatus(ctx context.Context, id string, status domain.SubmissionStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE submissions SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), formatTime(timeNow()), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
