package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/task-tracker/internal/model"
	"github.com/iliyamo/task-tracker/internal/queue"
	"github.com/iliyamo/task-tracker/internal/repository"
)

// ErrEmptyUpdate is returned when a patch carries no fields. It is checked
// before any store access, so the result is the same whether or not the task
// exists.
var ErrEmptyUpdate = errors.New("no fields provided to update")

// TaskStore is the slice of the task repository the engine needs.
type TaskStore interface {
	Create(ctx context.Context, t *model.Task) error
	GetByIDAndOwner(ctx context.Context, id, userID uint64) (*model.Task, error)
	ListByOwner(ctx context.Context, userID uint64) ([]*model.Task, error)
	Update(ctx context.Context, id, userID uint64, p model.TaskPatch) error
	Delete(ctx context.Context, id, userID uint64) error
}

// EventPublisher emits task lifecycle events. Implementations must be safe
// to call from the request path; failures are ignored by the engine.
type EventPublisher interface {
	PublishTaskEvent(ctx context.Context, e queue.TaskEvent) error
}

// NewTask carries the client-controllable fields of a task being created.
// The id and owner are always server-assigned; anything the client sends for
// those fields never reaches the engine.
type NewTask struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
}

// TaskService enforces ownership and validation rules for task CRUD. Every
// caller has already been resolved to a numeric user id by the auth gate.
type TaskService struct {
	tasks  TaskStore
	seq    Sequencer
	events EventPublisher // optional; nil disables event publishing
}

// NewTaskService constructs a TaskService. events may be nil.
func NewTaskService(tasks TaskStore, seq Sequencer, events EventPublisher) *TaskService {
	return &TaskService{tasks: tasks, seq: seq, events: events}
}

// Create validates the input, assigns an id from the "task_id" sequence,
// stamps the caller as owner, applies defaults and persists the task.
func (s *TaskService) Create(ctx context.Context, callerID uint64, in NewTask) (*model.Task, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if len(in.Title) > model.TitleMaxLen {
		return nil, fmt.Errorf("%w: title exceeds %d characters", ErrValidation, model.TitleMaxLen)
	}
	if in.Description != nil && len(*in.Description) > model.DescriptionMaxLen {
		return nil, fmt.Errorf("%w: description exceeds %d characters", ErrValidation, model.DescriptionMaxLen)
	}
	if in.Status == "" {
		in.Status = model.StatusPending
	}
	if !model.ValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, in.Status)
	}
	if in.Priority == "" {
		in.Priority = model.PriorityLow
	}
	if !model.ValidPriority(in.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, in.Priority)
	}

	id, err := s.seq.Next(ctx, repository.SeqTaskID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	t := &model.Task{
		ID:          id,
		UserID:      callerID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      in.Status,
		Priority:    in.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	s.publish(ctx, queue.EventTaskCreated, t)
	return t, nil
}

// Get returns the single task with the given id, but only when it belongs
// to the caller.
func (s *TaskService) Get(ctx context.Context, callerID, taskID uint64) (*model.Task, error) {
	return s.tasks.GetByIDAndOwner(ctx, taskID, callerID)
}

// List returns all tasks owned by the caller, possibly an empty slice.
func (s *TaskService) List(ctx context.Context, callerID uint64) ([]*model.Task, error) {
	return s.tasks.ListByOwner(ctx, callerID)
}

// Update merges the provided fields into the caller's task. An empty patch
// is rejected up front. The existence check runs first so an absent or
// foreign task reports ErrTaskNotFound; a patch that only restates current
// values reports ErrNoChange without touching the store, so the outcome never
// depends on how the database counts modified rows.
func (s *TaskService) Update(ctx context.Context, callerID, taskID uint64, p model.TaskPatch) (*model.Task, error) {
	if p.Empty() {
		return nil, ErrEmptyUpdate
	}
	if p.Title != nil {
		if *p.Title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrValidation)
		}
		if len(*p.Title) > model.TitleMaxLen {
			return nil, fmt.Errorf("%w: title exceeds %d characters", ErrValidation, model.TitleMaxLen)
		}
	}
	if p.Description != nil && len(*p.Description) > model.DescriptionMaxLen {
		return nil, fmt.Errorf("%w: description exceeds %d characters", ErrValidation, model.DescriptionMaxLen)
	}
	if p.Status != nil && !model.ValidStatus(*p.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *p.Status)
	}
	if p.Priority != nil && !model.ValidPriority(*p.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", ErrValidation, *p.Priority)
	}

	existing, err := s.tasks.GetByIDAndOwner(ctx, taskID, callerID)
	if err != nil {
		return nil, err
	}
	if !changes(existing, p) {
		return nil, repository.ErrNoChange
	}
	if err := s.tasks.Update(ctx, taskID, callerID, p); err != nil {
		return nil, err
	}
	t, err := s.tasks.GetByIDAndOwner(ctx, taskID, callerID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, queue.EventTaskUpdated, t)
	return t, nil
}

// Delete removes the caller's task. A delete that affected zero rows
// surfaces as ErrTaskNotFound.
func (s *TaskService) Delete(ctx context.Context, callerID, taskID uint64) error {
	t, err := s.tasks.GetByIDAndOwner(ctx, taskID, callerID)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, taskID, callerID); err != nil {
		return err
	}
	s.publish(ctx, queue.EventTaskDeleted, t)
	return nil
}

// changes reports whether applying p to t would modify any field value.
func changes(t *model.Task, p model.TaskPatch) bool {
	if p.Title != nil && *p.Title != t.Title {
		return true
	}
	if p.Description != nil && (t.Description == nil || *p.Description != *t.Description) {
		return true
	}
	if p.DueDate != nil && (t.DueDate == nil || !p.DueDate.Equal(*t.DueDate)) {
		return true
	}
	if p.Status != nil && *p.Status != t.Status {
		return true
	}
	if p.Priority != nil && *p.Priority != t.Priority {
		return true
	}
	return false
}

// publish emits a lifecycle event, ignoring broker failures: the request has
// already succeeded by the time events go out.
func (s *TaskService) publish(ctx context.Context, event string, t *model.Task) {
	if s.events == nil {
		return
	}
	_ = s.events.PublishTaskEvent(ctx, queue.TaskEvent{
		Event:      event,
		TaskID:     t.ID,
		UserID:     t.UserID,
		Title:      t.Title,
		Status:     t.Status,
		Priority:   t.Priority,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}
