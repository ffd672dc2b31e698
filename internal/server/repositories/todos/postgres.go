package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"todokeeper/internal/common"
	"todokeeper/internal/dbx"
	"todokeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Todo, error) {
	query :=
		`SELECT id, user_id, description, completed, created_at, updated_at FROM todos
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.Todo{}
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.UserID, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query :=
		`INSERT INTO todos (id, user_id, description, completed)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		todo.ID, todo.UserID, todo.Description, todo.Completed).Scan(&todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Todo, error) {
	query :=
		`SELECT id, user_id, description, completed, created_at, updated_at FROM todos
		 WHERE id = $1 AND user_id = $2
		 `

	todo := &models.Todo{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&todo.ID, &todo.UserID, &todo.Description, &todo.Completed, &todo.CreatedAt, &todo.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

func (r *PostgresRepository) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query :=
		`UPDATE todos SET description = $1, completed = $2, updated_at = now()
		 WHERE id = $3 AND user_id = $4
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		todo.Description, todo.Completed, todo.ID, todo.UserID).Scan(&todo.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return todo, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id string) error {
	query :=
		`DELETE FROM todos
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
