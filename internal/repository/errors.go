// Package repository contains data access logic separated from HTTP handlers.
// This file defines sentinel error values reused across repositories so that
// higher layers can distinguish failure scenarios without inspecting driver
// errors. Ownership failures are deliberately reported as ErrTaskNotFound
// rather than a distinct "forbidden" value, so a caller probing another
// user's ids learns nothing about their existence.
package repository

import "errors"

// ErrEmailExists is returned when a user registration collides with an
// existing email address. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when no user matches the given email or id.
var ErrUserNotFound = errors.New("user not found")

// ErrTaskNotFound is returned when no task matches the compound
// (id, user_id) filter: either the task does not exist or it belongs to
// someone else.
var ErrTaskNotFound = errors.New("task not found")

// ErrNoChange is returned when an update matched a row but modified nothing.
// The store reports zero modified rows and the operation is treated as a
// failed update, not a no-op success.
var ErrNoChange = errors.New("no rows changed")
