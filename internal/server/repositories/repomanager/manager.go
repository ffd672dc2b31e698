package repomanager

import (
	"context"
	"database/sql"

	"todokeeper/internal/dbx"
	"todokeeper/internal/server/repositories/todos"
	"todokeeper/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can run several repository calls inside one transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Todos(db dbx.DBTX) todos.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
