package dashboard

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/adboard/internal/source"
	"github.com/leapstack-labs/adboard/internal/ui/features/common"
	"github.com/leapstack-labs/adboard/internal/ui/notifier"
)

// SetupRoutes configures routes for the dashboard feature.
func SetupRoutes(
	router chi.Router,
	src source.Source,
	profiles *common.Profiles,
	notify *notifier.Notifier,
	logger *slog.Logger,
) error {
	handlers := NewHandlers(src, profiles, notify, logger)

	router.Get("/", handlers.Root)
	router.Get("/{level}", handlers.LevelPage)

	router.Route("/api", func(r chi.Router) {
		r.Get("/updates", handlers.Updates)
		r.Post("/settings/edit-mode", handlers.EditModeSSE)
		r.Get("/{level}/table", handlers.TableSSE)
		r.Post("/{level}/sort/reset", handlers.ResetSSE)
		r.Post("/{level}/sort/{column}", handlers.SortSSE)
		r.Post("/{level}/filter", handlers.FilterSSE)
	})

	return nil
}
