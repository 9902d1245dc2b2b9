// Package store persists tasks in a JSON Lines text file: one task per
// line, the file read whole and rewritten whole on every operation.
package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dcallier/taskline/internal/models"
)

// maxLineBytes bounds a single record line. Tasks are short text; 1 MiB
// leaves generous headroom.
const maxLineBytes = 1 << 20

// TaskStore owns the backing file. One instance is constructed at startup
// and shared; the mutex serializes mutations within the process. There is
// no cross-process coordination.
type TaskStore struct {
	path   string
	mu     sync.RWMutex
	logger *slog.Logger
}

// Open prepares a store at the given file path, creating the parent
// directory if needed. The file itself is created lazily on first write;
// a missing file reads as an empty collection.
func Open(path string, logger *slog.Logger) (*TaskStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return nil, fmt.Errorf("data path %s is a directory", path)
	}
	return &TaskStore{path: path, logger: logger}, nil
}

// Path returns the backing file location.
func (s *TaskStore) Path() string {
	return s.path
}

// load reads every task from the file. Blank lines are tolerated; any
// non-blank line that fails to parse aborts the read with a
// CorruptRecordError carrying the line position.
func (s *TaskStore) load() ([]models.Task, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open task file: %w", err)
	}
	defer f.Close()

	var tasks []models.Task
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" {
			continue
		}
		var t models.Task
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			s.logger.Error("corrupt record in task file",
				"file", s.path,
				"line", line,
				"content", raw,
				"error", err,
			)
			return nil, &CorruptRecordError{Line: line, Content: raw, Err: err}
		}
		tasks = append(tasks, t)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	return tasks, nil
}

// save rewrites the whole file, one newline-terminated JSON object per
// task. The content lands in a temp file first and is renamed over the
// original, so a reader never observes a partial rewrite.
func (s *TaskStore) save(tasks []models.Task) error {
	var buf bytes.Buffer
	for _, t := range tasks {
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("encode task %s: %w", t.ID, err)
		}
		buf.Write(b)
		buf.WriteByte('\n')
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}
