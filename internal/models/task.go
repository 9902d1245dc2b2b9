package models

import "time"

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// DefaultStatus is assigned when a create request omits the status.
const DefaultStatus = StatusPending

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Statuses lists every valid status, in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

// Task is the core domain entity, persisted one JSON object per line.
// The json tags define both the wire shape and the on-disk line shape.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateRequest carries the caller-supplied fields for a new task.
// ID and timestamps are assigned by the store.
type CreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

// UpdateRequest carries a partial update. Nil fields are left untouched.
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *Status `json:"status"`
}

// ListFilter selects a subsequence of the stored tasks. A task matches
// when its status equals any entry in Statuses; an empty filter matches
// everything.
type ListFilter struct {
	Statuses []Status
}

func (f ListFilter) Matches(t Task) bool {
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if t.Status == s {
			return true
		}
	}
	return false
}

// ListResponse wraps list results with their count.
type ListResponse struct {
	Tasks []Task `json:"tasks"`
	Count int    `json:"count"`
}

// Stats aggregates the stored collection. All fields are zero on an
// empty store.
type Stats struct {
	Total                int     `json:"total"`
	Pending              int     `json:"pending"`
	InProgress           int     `json:"in_progress"`
	Completed            int     `json:"completed"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// HealthResponse reports service liveness and store reachability.
type HealthResponse struct {
	Status    string `json:"status"`
	TaskCount int    `json:"task_count"`
	Error     string `json:"error,omitempty"`
}
