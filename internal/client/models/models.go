// Package models defines the wire-level entities exchanged with the
// todokeeper backend. Field names mirror the JSON the API produces.
package models

import "time"

// User is the identity record returned by the backend. It is immutable on
// the client; rehydration replaces it wholesale.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Todo is a task owned by exactly one user.
type Todo struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Session carries the bearer token and its declared expiry. The expiry is
// informational only; no refresh flow exists.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthResult is the response to a successful sign-up or sign-in.
type AuthResult struct {
	User    User    `json:"user"`
	Session Session `json:"session"`
}

// TodoUpdate describes a partial todo mutation. Nil fields are omitted from
// the request body and left unchanged by the server.
type TodoUpdate struct {
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}
