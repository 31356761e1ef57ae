// Package router sets up HTTP routes for the UI server.
package router

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/adboard/internal/source"
	"github.com/leapstack-labs/adboard/internal/ui/features/common"
	dashboardFeature "github.com/leapstack-labs/adboard/internal/ui/features/dashboard"
	"github.com/leapstack-labs/adboard/internal/ui/notifier"
	"github.com/leapstack-labs/adboard/internal/ui/resources"
	"github.com/starfederation/datastar-go/datastar"
)

// Deps are the collaborators shared by all features.
type Deps struct {
	Source   source.Source
	Profiles *common.Profiles
	Notifier *notifier.Notifier
	Logger   *slog.Logger
	Dev      bool
}

// SetupRoutes configures all routes for the UI server.
func SetupRoutes(router chi.Router, deps Deps) error {
	// Hot reload endpoint for dev mode
	if deps.Dev {
		setupReload(router)
	}

	// Static assets
	router.Handle("/static/*", resources.Handler())

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Feature routes
	return dashboardFeature.SetupRoutes(router, deps.Source, deps.Profiles, deps.Notifier, deps.Logger)
}

func setupReload(router chi.Router) {
	reloadChan := make(chan struct{}, 1)
	var hotReloadOnce sync.Once

	router.Get("/reload", func(w http.ResponseWriter, r *http.Request) {
		sse := datastar.NewSSE(w, r)
		reload := func() { _ = sse.ExecuteScript("window.location.reload()") }
		hotReloadOnce.Do(reload)
		select {
		case <-reloadChan:
			reload()
		case <-r.Context().Done():
		}
	})

	router.Get("/hotreload", func(w http.ResponseWriter, _ *http.Request) {
		select {
		case reloadChan <- struct{}{}:
		default:
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}
