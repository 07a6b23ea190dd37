// Package store defines the persistence contracts for the DirectStay
// directory. The reconciliation pipeline only depends on the
// SubmissionSource read contract; the full SubmissionStore adds the
// submission workflow's write side.
package store

import (
	"context"
	"errors"

	"github.com/directstay/directstay-server/internal/domain"
)

// Storage errors.
var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// SubmissionSource supplies approved submissions to the reconciliation
// engine. Whatever backs it is irrelevant to the reconciliation logic.
type SubmissionSource interface {
	ListApprovedSubmissions(ctx context.Context) ([]*domain.Submission, error)
}

// SubmissionStore is the full persistence contract for the submission
// workflow.
type SubmissionStore interface {
	SubmissionSource

	CreateSubmission(ctx context.Context, sub *domain.Submission) error
	GetSubmission(ctx context.Context, id string) (*domain.Submission, error)
	UpdateSubmission(ctx context.Context, sub *domain.Submission) error
	DeleteSubmission(ctx context.Context, id string) error

	// ListSubmissions returns submissions filtered by status; an empty
	// status returns everything, newest first.
	ListSubmissions(ctx context.Context, status domain.SubmissionStatus) ([]*domain.Submission, error)

	// SetSubmissionStatus transitions a submission's review status. The
	// caller is responsible for checking workflow rules.
	SetSubmissionStatus(ctx context.Context, id string, status domain.SubmissionStatus) error
}
