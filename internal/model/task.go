package model

import "time"

// Task status values. A task starts out pending and moves through
// in-progress to completed.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// Task priority values.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Field length limits enforced before a task reaches the store.
const (
	TitleMaxLen       = 100
	DescriptionMaxLen = 500
)

// Task represents a to-do item owned by a single user. The ID comes from the
// "task_id" sequence counter and UserID is always taken from the authenticated
// caller, never from the request body. Both are immutable after creation.
type Task struct {
	ID          uint64     `json:"id,string"`
	UserID      uint64     `json:"user_id,string"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskPatch carries a partial update. Nil fields are left untouched by the
// store; only non-nil fields end up in the UPDATE statement.
type TaskPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
}

// Empty reports whether the patch carries no fields at all. An empty patch is
// rejected before any store access.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil &&
		p.Status == nil && p.Priority == nil
}

// ValidStatus reports whether s is one of the allowed status values.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// ValidPriority reports whether p is one of the allowed priority values.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
