package todos

import (
	"context"

	"todokeeper/internal/server/models"
)

// Repository persists todos. Every read and write is scoped to the owning
// user: a todo belonging to someone else behaves exactly like a missing one.
// ListByUser returns rows newest first.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]models.Todo, error)
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	GetByID(ctx context.Context, userID, id string) (*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	Delete(ctx context.Context, userID, id string) error
}
