package database

import (
	"context"
	"database/sql"
)

// schema contains the DDL for every table the service needs. Statements are
// idempotent so EnsureSchema can run on every startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED PRIMARY KEY,
		full_name     VARCHAR(255) NOT NULL,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		created_at    DATETIME NOT NULL,
		updated_at    DATETIME NOT NULL,
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id          BIGINT UNSIGNED PRIMARY KEY,
		user_id     BIGINT UNSIGNED NOT NULL,
		title       VARCHAR(100) NOT NULL,
		description VARCHAR(500) NULL,
		due_date    DATETIME NULL,
		status      ENUM('pending','in-progress','completed') NOT NULL DEFAULT 'pending',
		priority    ENUM('low','medium','high') NOT NULL DEFAULT 'low',
		created_at  DATETIME NOT NULL,
		updated_at  DATETIME NOT NULL,
		KEY idx_tasks_user (user_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS counters (
		name VARCHAR(64) PRIMARY KEY,
		seq  BIGINT UNSIGNED NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the users, tasks and counters tables when they do not
// exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
