package model

import "time"

// User represents an application user record as stored in the `users` table.
// The ID is allocated from the "user_id" sequence counter at registration time
// and is immutable afterwards. The password hash is never serialized.
//
// Fields:
//  ID           – sequence-derived identifier, rendered as a string in JSON.
//  FullName     – display name provided at registration.
//  Email        – unique email address, used as the login identifier.
//  PasswordHash – bcrypt hash of the password (salt and cost embedded).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    `json:"id,string"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
