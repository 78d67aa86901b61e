package repository

import (
	"context"
	"database/sql"
)

// Names of the sequence counters used by the application.
const (
	SeqUserID = "user_id"
	SeqTaskID = "task_id"
)

// SequenceRepo hands out monotonically increasing identifiers from the
// `counters` table, one row per named sequence.
type SequenceRepo struct {
	db *sql.DB
}

// NewSequenceRepo constructs a SequenceRepo with the provided DB handle.
func NewSequenceRepo(db *sql.DB) *SequenceRepo {
	return &SequenceRepo{db: db}
}

// Next increments the named counter and returns the new value. The upsert
// runs as a single statement and LAST_INSERT_ID carries the incremented
// value back on the same connection, so concurrent callers can never observe
// a duplicate. The counter row is created on first use.
func (r *SequenceRepo) Next(ctx context.Context, name string) (uint64, error) {
	const q = `INSERT INTO counters (name, seq) VALUES (?, LAST_INSERT_ID(1))
	           ON DUPLICATE KEY UPDATE seq = LAST_INSERT_ID(seq + 1)`
	res, err := r.db.ExecContext(ctx, q, name)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}
