package api

import (
	"net/http"

	"github.com/dcallier/taskline/internal/models"
	"github.com/dcallier/taskline/internal/store"
)

type HealthHandler struct {
	store *store.TaskStore
}

func NewHealthHandler(ts *store.TaskStore) *HealthHandler {
	return &HealthHandler{store: ts}
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "taskline API is running",
	})
}

// Health handles GET /health, reporting store reachability.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.Count()
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, models.HealthResponse{
			Status: "degraded",
			Error:  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:    "ok",
		TaskCount: count,
	})
}
