package api

import (
	"context"

	"todokeeper/internal/client/models"
)

// Client is the single channel for all backend communication. Every
// authenticated operation fails with ErrUnauthorized when the stored
// credential is missing or rejected.
type Client interface {
	SignUp(ctx context.Context, email, password, confirmPassword string) (*models.AuthResult, error)
	SignIn(ctx context.Context, email, password string) (*models.AuthResult, error)
	SignOut(ctx context.Context) error
	GetCurrentUser(ctx context.Context) (*models.User, error)

	ListTodos(ctx context.Context) ([]models.Todo, error)
	CreateTodo(ctx context.Context, description string) (*models.Todo, error)
	GetTodo(ctx context.Context, id string) (*models.Todo, error)
	UpdateTodo(ctx context.Context, id string, upd models.TodoUpdate) (*models.Todo, error)
	ToggleTodo(ctx context.Context, id string) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
}

// CredentialSource is the read side of the persisted credential slot. The
// session manager owns the writes; the API client only reads the token and
// clears it on an authorization failure.
type CredentialSource interface {
	Token(ctx context.Context) (string, error)
	ClearToken(ctx context.Context) error
}
