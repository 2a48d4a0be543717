// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/irebix/LayerVisSync/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	syncHandler *handlers.SyncHandler,
	documentHandler *handlers.DocumentHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	r.Route("/api/v1", func(r chi.Router) {
		// Sync panel.
		r.Get("/selection", syncHandler.Selection)
		r.Get("/sync/status", syncHandler.Status)
		r.Post("/sync/toggle", syncHandler.Toggle)

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", syncHandler.ListGroups)
			r.Delete("/{index}", syncHandler.DeleteGroup)
			r.Put("/{index}/visibility", syncHandler.SetGroupVisibility)
			r.Post("/{index}/visibility/toggle", syncHandler.ToggleGroupVisibility)
		})

		// Native document edits.
		r.Get("/document/layers", documentHandler.Tree)
		r.Post("/document/layers", documentHandler.AddLayer)
		r.Patch("/document/layers/{id}", documentHandler.UpdateLayer)
		r.Delete("/document/layers/{id}", documentHandler.RemoveLayer)
		r.Put("/document/selection", documentHandler.Select)
	})

	return r
}
