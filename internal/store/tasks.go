package store

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dcallier/taskline/internal/models"
)

// Create validates the request, assigns an id and timestamps, and appends
// the task to the collection.
func (s *TaskStore) Create(req models.CreateRequest) (*models.Task, error) {
	if req.Title == "" {
		return nil, &ValidationError{Field: "title", Reason: "is required"}
	}
	status := req.Status
	if status == "" {
		status = models.DefaultStatus
	}
	if !status.IsValid() {
		return nil, &ValidationError{Field: "status", Reason: "must be one of pending, in_progress, completed"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.load()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	t := models.Task{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	tasks = append(tasks, t)

	if err := s.save(tasks); err != nil {
		return nil, err
	}
	return &t, nil
}

// Get returns the task with the given id, scanning the whole file.
func (s *TaskStore) Get(id string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, ErrNotFound
}

// List returns the stored tasks in insertion order, narrowed by the
// filter. No matches is an empty result, not an error.
func (s *TaskStore) List(filter models.ListFilter) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks, err := s.load()
	if err != nil {
		return nil, err
	}
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Update applies the non-nil fields of req to the task with the given id,
// refreshes updated_at, and rewrites the file.
func (s *TaskStore) Update(id string, req models.UpdateRequest) (*models.Task, error) {
	if req.Title != nil && *req.Title == "" {
		return nil, &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if req.Status != nil && !req.Status.IsValid() {
		return nil, &ValidationError{Field: "status", Reason: "must be one of pending, in_progress, completed"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		if tasks[i].ID != id {
			continue
		}
		if req.Title != nil {
			tasks[i].Title = *req.Title
		}
		if req.Description != nil {
			tasks[i].Description = *req.Description
		}
		if req.Status != nil {
			tasks[i].Status = *req.Status
		}
		tasks[i].UpdatedAt = time.Now().UTC()

		if err := s.save(tasks); err != nil {
			return nil, err
		}
		t := tasks[i]
		return &t, nil
	}
	return nil, ErrNotFound
}

// Delete removes the task with the given id and rewrites the file.
func (s *TaskStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.load()
	if err != nil {
		return err
	}

	kept := tasks[:0]
	found := false
	for _, t := range tasks {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	if !found {
		return ErrNotFound
	}
	return s.save(kept)
}

// DeleteAll truncates the collection to empty.
func (s *TaskStore) DeleteAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(nil)
}

// Count returns the number of stored tasks.
func (s *TaskStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(tasks), nil
}

// Stats tallies the collection. An empty store yields all zeros.
func (s *TaskStore) Stats() (*models.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks, err := s.load()
	if err != nil {
		return nil, err
	}

	st := &models.Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case models.StatusPending:
			st.Pending++
		case models.StatusInProgress:
			st.InProgress++
		case models.StatusCompleted:
			st.Completed++
		}
	}
	if st.Total > 0 {
		pct := float64(st.Completed) / float64(st.Total) * 100
		st.CompletionPercentage = math.Round(pct*100) / 100
	}
	return st, nil
}
