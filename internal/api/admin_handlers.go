package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/directstay/directstay-server/internal/domain"
)

func (s *Server) registerAdminRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "adminListSubmissions",
		Method:      http.MethodGet,
		Path:        "/api/v1/admin/submissions",
		Summary:     "List submissions",
		Description: "Returns submissions filtered by review status",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAdminListSubmissions)

	huma.Register(s.api, huma.Operation{
		OperationID: "approveSubmission",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/submissions/{id}/approve",
		Summary:     "Approve submission",
		Description: "Moves a pending submission into the public directory",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleApproveSubmission)

	huma.Register(s.api, huma.Operation{
		OperationID: "rejectSubmission",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/submissions/{id}/reject",
		Summary:     "Reject submission",
		Description: "Rejects a pending submission",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRejectSubmission)

	huma.Register(s.api, huma.Operation{
		OperationID: "reopenSubmission",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/submissions/{id}/reopen",
		Summary:     "Reopen submission",
		Description: "Returns a reviewed submission to pending for re-review",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleReopenSubmission)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteSubmission",
		Method:      http.MethodDelete,
		Path:        "/api/v1/admin/submissions/{id}",
		Summary:     "Delete submission",
		Description: "Removes a submission entirely",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteSubmission)

	huma.Register(s.api, huma.Operation{
		OperationID: "runReconciliation",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/reconcile",
		Summary:     "Run geography reconciliation",
		Description: "Validates declared cities of all approved submissions against GeoNames and rebuilds the search index",
		Tags:        []string{"Admin"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRunReconciliation)
}

// === DTOs ===

type AdminListSubmissionsInput struct {
	Authorization string `header:"Authorization"`
	Status        string `query:"status" enum:"pending,approved,rejected" doc:"Filter by review status. Omit for all."`
}

type AdminSubmissionInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Submission ID"`
}

type AdminAuthInput struct {
	Authorization string `header:"Authorization"`
}

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

// ReconcileResponse reports the outcome of a reconciliation run.
type ReconcileResponse struct {
	Processed    int `json:"processed" doc:"Submissions reconciled successfully"`
	Failed       int `json:"failed" doc:"Submissions that could not be reconciled"`
	CachedCities int `json:"cached_cities" doc:"Distinct validated cities in the session cache"`
}

type ReconcileOutput struct {
	Body ReconcileResponse
}

// === Handlers ===

func (s *Server) handleAdminListSubmissions(ctx context.Context, input *AdminListSubmissionsInput) (*SubmissionListOutput, error) {
	if err := s.requireAdmin(input.Authorization); err != nil {
		return nil, err
	}

	subs, err := s.services.Submission.ListSubmissions(ctx, domain.SubmissionStatus(input.Status))
	if err != nil {
		return nil, err
	}

	resp := make([]SubmissionResponse, len(subs))
	for i, sub := range subs {
		resp[i] = mapSubmissionResponse(sub)
	}

	return &SubmissionListOutput{Body: SubmissionListResponse{Submissions: resp, Total: len(resp)}}, nil
}

func (s *Server) handleApproveSubmission(ctx context.Context, input *AdminSubmissionInput) (*SubmissionOutput, error) {
	if err := s.requireAdmin(input.Authorization); err != nil {
		return nil, err
	}

	sub, err := s.services.Submission.Approve(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &SubmissionOutput{Body: mapSubmissionResponse(sub)}, nil
}

func (s *Server) handleRejectSubmission(ctx context.Context, input *AdminSubmissionInput) (*SubmissionOutput, error) {
	if err := s.requireAdmin(input.Authorization); err != nil {
		return nil, err
	}

	sub, err := s.services.Submission.Reject(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &SubmissionOutput{Body: mapSubmissionResponse(sub)}, nil
}

func (s *Server) handleReopenSubmission(ctx context.Context, input *AdminSubmissionInput) (*SubmissionOutput, error) {
	if err := s.requireAdmin(input.Authorization); err != nil {
		return nil, err
	}

	sub, err := s.services.Submission.Reopen(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &SubmissionOutput{Body: mapSubmissionResponse(sub)}, nil
}

func (s *Server) handleDeleteSubmission(ctx context.Context, input *AdminSubmissionInput) (*MessageOutput, error) {
	if err := s.requireAdmin(input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Submission.DeleteSubmission(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Submission deleted"}}, nil
}

func (s *Server) handleRunReconciliation(ctx context.Context, input *AdminAuthInput) (*ReconcileOutput, error) {
	if err := s.requireAdmin(input.Authorization); err != nil {
		return nil, err
	}

	report, err := s.services.Reconcile.ProcessAllApprovedSubmissions(ctx)
	if err != nil {
		return nil, err
	}

	// Reindex so canonical city names from this run reach search.
	if err := s.services.Search.RebuildFromStore(ctx); err != nil {
		s.logger.Warn("Search reindex after reconciliation failed", "error", err)
	}

	return &ReconcileOutput{Body: ReconcileResponse{
		Processed:    report.Processed,
		Failed:       report.Failed,
		CachedCities: s.services.Reconcile.Cache().Len(),
	}}, nil
}
