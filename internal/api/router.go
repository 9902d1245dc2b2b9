package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/dcallier/taskline/internal/store"
)

// NewRouter creates the chi router with all routes and middleware.
func NewRouter(ts *store.TaskStore, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(ts)
	taskH := NewTaskHandler(ts, logger)

	r.Get("/", healthH.Root)
	r.Get("/health", healthH.Health)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskH.List)
		r.Post("/", taskH.Create)
		r.Delete("/", taskH.DeleteAll)
		r.Get("/stats", taskH.Stats)
		r.Get("/{id}", taskH.Get)
		r.Put("/{id}", taskH.Update)
		r.Patch("/{id}", taskH.Update)
		r.Delete("/{id}", taskH.Delete)
	})

	return r
}
