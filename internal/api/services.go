package api

import (
	"github.com/directstay/directstay-server/internal/service"
)

// Services groups the business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Submission *service.SubmissionService
	Reconcile  *service.ReconcileService
	Search     *service.SearchService
}
