package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dcallier/taskline/internal/models"
)

func setupTestStore(t *testing.T) *TaskStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.txt")
	ts, err := Open(path, nil)
	if err != nil {
		t.Fatalf("failed to open test store: %v", err)
	}
	return ts
}

func mustCreate(t *testing.T, ts *TaskStore, req models.CreateRequest) *models.Task {
	t.Helper()
	task, err := ts.Create(req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return task
}

func TestCreate(t *testing.T) {
	ts := setupTestStore(t)

	t.Run("assigns id, default status, and timestamps", func(t *testing.T) {
		task := mustCreate(t, ts, models.CreateRequest{Title: "Buy milk"})

		if task.ID == "" {
			t.Fatal("expected non-empty id")
		}
		if task.Status != models.StatusPending {
			t.Fatalf("expected default status pending, got %s", task.Status)
		}
		if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
			t.Fatal("expected timestamps to be set")
		}

		got, err := ts.Get(task.ID)
		if err != nil {
			t.Fatalf("get after create failed: %v", err)
		}
		if got.Title != task.Title || got.Description != task.Description || got.Status != task.Status {
			t.Fatalf("get returned different record: %+v != %+v", got, task)
		}
		if !got.CreatedAt.Equal(task.CreatedAt) || !got.UpdatedAt.Equal(task.UpdatedAt) {
			t.Fatalf("timestamps changed across the round trip")
		}
	})

	t.Run("missing title is a validation error", func(t *testing.T) {
		_, err := ts.Create(models.CreateRequest{Description: "no title"})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if ve.Field != "title" {
			t.Fatalf("expected title field, got %s", ve.Field)
		}
	})

	t.Run("invalid status is a validation error", func(t *testing.T) {
		_, err := ts.Create(models.CreateRequest{Title: "x", Status: "done"})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("explicit status is kept", func(t *testing.T) {
		task := mustCreate(t, ts, models.CreateRequest{Title: "x", Status: models.StatusInProgress})
		if task.Status != models.StatusInProgress {
			t.Fatalf("expected in_progress, got %s", task.Status)
		}
	})
}

func TestNotFound(t *testing.T) {
	ts := setupTestStore(t)
	mustCreate(t, ts, models.CreateRequest{Title: "present"})

	if _, err := ts.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
	if _, err := ts.Update("missing", models.UpdateRequest{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update: expected ErrNotFound, got %v", err)
	}
	if err := ts.Delete("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete: expected ErrNotFound, got %v", err)
	}
}

func TestListAfterCreatesAndDeletes(t *testing.T) {
	ts := setupTestStore(t)

	var ids []string
	for _, title := range []string{"a", "b", "c", "d"} {
		ids = append(ids, mustCreate(t, ts, models.CreateRequest{Title: title}).ID)
	}

	if err := ts.Delete(ids[1]); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	tasks, err := ts.List(models.ListFilter{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks after 4 creates and 1 delete, got %d", len(tasks))
	}
	for _, task := range tasks {
		if task.ID == ids[1] {
			t.Fatal("deleted task still listed")
		}
	}
	// Insertion order preserved
	if tasks[0].Title != "a" || tasks[1].Title != "c" || tasks[2].Title != "d" {
		t.Fatalf("unexpected order: %s %s %s", tasks[0].Title, tasks[1].Title, tasks[2].Title)
	}
}

func TestFilter(t *testing.T) {
	ts := setupTestStore(t)

	mustCreate(t, ts, models.CreateRequest{Title: "a"})
	done := mustCreate(t, ts, models.CreateRequest{Title: "b", Status: models.StatusCompleted})
	mustCreate(t, ts, models.CreateRequest{Title: "c", Status: models.StatusInProgress})

	t.Run("exact status match", func(t *testing.T) {
		tasks, err := ts.List(models.ListFilter{Statuses: []models.Status{models.StatusCompleted}})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(tasks) != 1 || tasks[0].ID != done.ID {
			t.Fatalf("expected only the completed task, got %+v", tasks)
		}
	})

	t.Run("multiple statuses match any", func(t *testing.T) {
		tasks, err := ts.List(models.ListFilter{Statuses: []models.Status{
			models.StatusCompleted, models.StatusInProgress,
		}})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(tasks) != 2 {
			t.Fatalf("expected 2 tasks, got %d", len(tasks))
		}
	})

	t.Run("no match yields empty, not error", func(t *testing.T) {
		empty := setupTestStore(t)
		tasks, err := empty.List(models.ListFilter{Statuses: []models.Status{models.StatusCompleted}})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(tasks) != 0 {
			t.Fatalf("expected empty result, got %d", len(tasks))
		}
	})
}

func TestUpdate(t *testing.T) {
	ts := setupTestStore(t)
	task := mustCreate(t, ts, models.CreateRequest{Title: "Buy milk", Description: "2 liters"})

	t.Run("changes only targeted fields", func(t *testing.T) {
		status := models.StatusCompleted
		updated, err := ts.Update(task.ID, models.UpdateRequest{Status: &status})
		if err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if updated.Status != models.StatusCompleted {
			t.Fatalf("expected completed, got %s", updated.Status)
		}
		if updated.Title != task.Title || updated.Description != task.Description {
			t.Fatal("update touched untargeted fields")
		}
		if !updated.CreatedAt.Equal(task.CreatedAt) {
			t.Fatal("update changed created_at")
		}
		if updated.UpdatedAt.Before(task.UpdatedAt) {
			t.Fatal("updated_at moved backwards")
		}
	})

	t.Run("blank title rejected", func(t *testing.T) {
		empty := ""
		_, err := ts.Update(task.ID, models.UpdateRequest{Title: &empty})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		bad := models.Status("done")
		_, err := ts.Update(task.ID, models.UpdateRequest{Status: &bad})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})
}

func TestDeleteAll(t *testing.T) {
	ts := setupTestStore(t)
	mustCreate(t, ts, models.CreateRequest{Title: "a"})
	mustCreate(t, ts, models.CreateRequest{Title: "b"})

	if err := ts.DeleteAll(); err != nil {
		t.Fatalf("delete all failed: %v", err)
	}

	count, err := ts.Count()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 tasks, got %d", count)
	}
}

func TestStats(t *testing.T) {
	t.Run("empty store yields zeros", func(t *testing.T) {
		ts := setupTestStore(t)
		stats, err := ts.Stats()
		if err != nil {
			t.Fatalf("stats failed: %v", err)
		}
		if stats.Total != 0 || stats.Pending != 0 || stats.InProgress != 0 || stats.Completed != 0 {
			t.Fatalf("expected all zeros, got %+v", stats)
		}
		if stats.CompletionPercentage != 0 {
			t.Fatalf("expected 0%%, got %f", stats.CompletionPercentage)
		}
	})

	t.Run("tallies per status", func(t *testing.T) {
		ts := setupTestStore(t)
		mustCreate(t, ts, models.CreateRequest{Title: "a"})
		mustCreate(t, ts, models.CreateRequest{Title: "b", Status: models.StatusCompleted})
		mustCreate(t, ts, models.CreateRequest{Title: "c", Status: models.StatusInProgress})

		stats, err := ts.Stats()
		if err != nil {
			t.Fatalf("stats failed: %v", err)
		}
		if stats.Total != 3 || stats.Pending != 1 || stats.InProgress != 1 || stats.Completed != 1 {
			t.Fatalf("unexpected tallies: %+v", stats)
		}
		if stats.CompletionPercentage != 33.33 {
			t.Fatalf("expected 33.33, got %f", stats.CompletionPercentage)
		}
	})
}

func TestFileFormat(t *testing.T) {
	ts := setupTestStore(t)
	mustCreate(t, ts, models.CreateRequest{Title: "a"})
	mustCreate(t, ts, models.CreateRequest{Title: "b"})

	data, err := os.ReadFile(ts.Path())
	if err != nil {
		t.Fatalf("read data file: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Fatal("expected trailing newline")
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, "{") || !strings.HasSuffix(line, "}") {
			t.Fatalf("line %d is not a bare JSON object: %q", i+1, line)
		}
	}
}

func TestCorruptRecord(t *testing.T) {
	ts := setupTestStore(t)
	mustCreate(t, ts, models.CreateRequest{Title: "good"})

	// Append garbage after a valid record; blank lines stay tolerated.
	f, err := os.OpenFile(ts.Path(), os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open data file: %v", err)
	}
	if _, err := f.WriteString("\n{not json}\n"); err != nil {
		t.Fatalf("append garbage: %v", err)
	}
	f.Close()

	_, err = ts.List(models.ListFilter{})
	var ce *CorruptRecordError
	if !errors.As(err, &ce) {
		t.Fatalf("expected CorruptRecordError, got %v", err)
	}
	if ce.Line != 3 {
		t.Fatalf("expected line 3, got %d", ce.Line)
	}
	if ce.Content != "{not json}" {
		t.Fatalf("expected offending content, got %q", ce.Content)
	}

	// The failure must also abort mutations, not drop the record.
	if _, err := ts.Create(models.CreateRequest{Title: "blocked"}); !errors.As(err, &ce) {
		t.Fatalf("expected create to fail on corruption, got %v", err)
	}
}

func TestMissingFileReadsEmpty(t *testing.T) {
	ts := setupTestStore(t)

	tasks, err := ts.List(models.ListFilter{})
	if err != nil {
		t.Fatalf("list on missing file failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty store, got %d tasks", len(tasks))
	}
}
