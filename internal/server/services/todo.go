package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"todokeeper/internal/common"
	"todokeeper/internal/server/models"
	"todokeeper/internal/server/repositories/repomanager"
)

const maxDescriptionLen = 1000

// TodoUpdate carries a partial update. Nil fields keep the stored value.
type TodoUpdate struct {
	Description *string
	Completed   *bool
}

// TodoService implements the todo operations. Every method takes the id of
// the authenticated user and never reaches outside that user's rows.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTodoService(db *sql.DB, m repomanager.RepositoryManager) *TodoService {
	return &TodoService{db: db, repomanager: m}
}

// List returns the user's todos, newest first.
func (s *TodoService) List(ctx context.Context, userID string) ([]models.Todo, error) {
	repo := s.repomanager.Todos(s.db)
	result, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing todos: %w", err)
	}
	return result, nil
}

// Create stores a new open todo.
func (s *TodoService) Create(ctx context.Context, userID, description string) (*models.Todo, error) {
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	todo := &models.Todo{
		ID:          uuid.NewString(),
		UserID:      userID,
		Description: strings.TrimSpace(description),
	}

	repo := s.repomanager.Todos(s.db)
	t, err := repo.Create(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("error creating todo: %w", err)
	}
	return t, nil
}

// Get returns one todo. Rows owned by other users surface as not found.
func (s *TodoService) Get(ctx context.Context, userID, id string) (*models.Todo, error) {
	repo := s.repomanager.Todos(s.db)
	return repo.GetByID(ctx, userID, id)
}

// Update applies a partial update and returns the stored entity.
func (s *TodoService) Update(ctx context.Context, userID, id string, upd TodoUpdate) (*models.Todo, error) {
	if upd.Description != nil {
		if err := validateDescription(*upd.Description); err != nil {
			return nil, err
		}
	}

	repo := s.repomanager.Todos(s.db)
	todo, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if upd.Description != nil {
		todo.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.Completed != nil {
		todo.Completed = *upd.Completed
	}

	return repo.Update(ctx, todo)
}

// Toggle flips the completed flag. The current value is read and inverted
// here, so clients cannot race each other into a stale write of their own.
func (s *TodoService) Toggle(ctx context.Context, userID, id string) (*models.Todo, error) {
	repo := s.repomanager.Todos(s.db)
	todo, err := repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	todo.Completed = !todo.Completed
	return repo.Update(ctx, todo)
}

// Delete removes the todo.
func (s *TodoService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Todos(s.db)
	return repo.Delete(ctx, userID, id)
}

func validateDescription(description string) error {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return fmt.Errorf("%w: description is required", common.ErrorValidation)
	}
	if len(trimmed) > maxDescriptionLen {
		return fmt.Errorf("%w: description is too long", common.ErrorValidation)
	}
	return nil
}
