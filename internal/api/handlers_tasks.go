package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dcallier/taskline/internal/models"
	"github.com/dcallier/taskline/internal/store"
)

type TaskHandler struct {
	store  *store.TaskStore
	logger *slog.Logger
}

func NewTaskHandler(ts *store.TaskStore, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{store: ts, logger: logger}
}

// respondError maps a store error to a status code, logging server-side
// failures before they leave the handler.
func (h *TaskHandler) respondError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("store operation failed", "error", err)
	}
	writeError(w, status, err.Error())
}

// Create handles POST /tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	task, err := h.store.Create(req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, task)
}

// List handles GET /tasks with an optional ?status=a,b filter.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter models.ListFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			status := models.Status(strings.TrimSpace(part))
			if !status.IsValid() {
				writeError(w, http.StatusBadRequest, "invalid status filter: "+part)
				return
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	tasks, err := h.store.List(filter)
	if err != nil {
		h.respondError(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	writeJSON(w, http.StatusOK, models.ListResponse{Tasks: tasks, Count: len(tasks)})
}

// Get handles GET /tasks/{id}
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	task, err := h.store.Get(id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Update handles PUT and PATCH /tasks/{id}
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.UpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	task, err := h.store.Update(id, req)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.Delete(id); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteAll handles DELETE /tasks
func (h *TaskHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteAll(); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /tasks/stats
func (h *TaskHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats()
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
