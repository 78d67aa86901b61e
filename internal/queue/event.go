// Package queue defines message payloads exchanged over the message broker
// along with the publisher and the background consumer.
package queue

// Names of the task lifecycle events.
const (
	EventTaskCreated = "task.created"
	EventTaskUpdated = "task.updated"
	EventTaskDeleted = "task.deleted"
)

// TaskEvent is published whenever a task is created, updated or deleted. It
// carries enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type TaskEvent struct {
	Event      string `json:"event"`
	TaskID     uint64 `json:"task_id"`
	UserID     uint64 `json:"user_id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	Priority   string `json:"priority"`
	OccurredAt string `json:"occurred_at"`
}
