// Package models defines the server-side persistence entities.
package models

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Todo struct {
	ID          string
	UserID      string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
