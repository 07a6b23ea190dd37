package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/directstay/directstay-server/internal/api"
	"github.com/directstay/directstay-server/internal/config"
	"github.com/directstay/directstay-server/internal/logger"
	"github.com/directstay/directstay-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	submissionService := do.MustInvoke[*service.SubmissionService](i)
	reconcileService := do.MustInvoke[*service.ReconcileService](i)
	searchService := do.MustInvoke[*service.SearchService](i)

	services := &api.Services{
		Submission: submissionService,
		Reconcile:  reconcileService,
		Search:     searchService,
	}

	if cfg.Admin.Token == "" {
		log.Warn("No admin token configured, admin endpoints are disabled")
	}

	handler := api.NewServer(storeHandle.Store, services, api.Options{
		AdminToken:  cfg.Admin.Token,
		SubmitRPS:   float64(cfg.Submit.PerMinute) / 60,
		SubmitBurst: cfg.Submit.Burst,
	}, log.Logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
