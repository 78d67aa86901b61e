package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/task-tracker/internal/model"
)

// TaskRepo encapsulates all database queries related to tasks. Every lookup
// or mutation that targets a single task filters on the compound
// (id, user_id) pair, never id alone, so one user can never read or touch
// another user's rows.
type TaskRepo struct {
	db *sql.DB
}

// NewTaskRepo constructs a TaskRepo with the provided DB handle.
func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

// Create inserts a new task row. The caller supplies the id (allocated from
// the task_id sequence), the owner and the defaulted fields.
func (r *TaskRepo) Create(ctx context.Context, t *model.Task) error {
	const q = `INSERT INTO tasks (id, user_id, title, description, due_date, status, priority, created_at, updated_at)
	           VALUES (?,?,?,?,?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, q,
		t.ID, t.UserID, t.Title, t.Description, t.DueDate,
		t.Status, t.Priority, t.CreatedAt, t.UpdatedAt)
	return err
}

// GetByIDAndOwner fetches a task by id but only if it belongs to the given
// user. ErrTaskNotFound is returned when the task does not exist or is owned
// by someone else.
func (r *TaskRepo) GetByIDAndOwner(ctx context.Context, id, userID uint64) (*model.Task, error) {
	const q = `SELECT id, user_id, title, description, due_date, status, priority, created_at, updated_at
	           FROM tasks WHERE id = ? AND user_id = ? LIMIT 1`
	t, err := scanTask(r.db.QueryRowContext(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return t, nil
}

// ListByOwner returns all tasks belonging to the given user ordered by id.
func (r *TaskRepo) ListByOwner(ctx context.Context, userID uint64) ([]*model.Task, error) {
	const q = `SELECT id, user_id, title, description, due_date, status, priority, created_at, updated_at
	           FROM tasks WHERE user_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update applies a partial patch to the task owned by userID. Only non-nil
// patch fields are written; updated_at is always refreshed. No-op patches are
// rejected by the service before reaching this method, so zero affected rows
// can only mean the row vanished after the caller's existence check, which is
// reported as ErrNoChange.
func (r *TaskRepo) Update(ctx context.Context, id, userID uint64, p model.TaskPatch) error {
	var sets []string
	var args []any
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.DueDate != nil {
		sets = append(sets, "due_date = ?")
		args = append(args, *p.DueDate)
	}
	if p.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *p.Status)
	}
	if p.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *p.Priority)
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC())
	args = append(args, id, userID)

	q := "UPDATE tasks SET " + strings.Join(sets, ", ") + " WHERE id = ? AND user_id = ?"
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoChange
	}
	return nil
}

// Delete removes the task owned by userID. ErrTaskNotFound is returned when
// the delete affected zero rows.
func (r *TaskRepo) Delete(ctx context.Context, id, userID uint64) error {
	const q = `DELETE FROM tasks WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*model.Task, error) {
	var (
		t       model.Task
		desc    sql.NullString
		dueDate sql.NullTime
	)
	err := s.Scan(&t.ID, &t.UserID, &t.Title, &desc, &dueDate,
		&t.Status, &t.Priority, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	if dueDate.Valid {
		d := dueDate.Time
		t.DueDate = &d
	}
	return &t, nil
}
