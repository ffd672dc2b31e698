package services

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"todokeeper/internal/common"
	"todokeeper/internal/dbx"
	"todokeeper/internal/server/models"
	"todokeeper/internal/server/repositories/todos"
	"todokeeper/internal/server/repositories/users"
)

// fakeRepoManager vends in-memory repositories so service logic can be
// exercised without a database.
type fakeRepoManager struct {
	users *fakeUserRepo
	todos *fakeTodoRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users: &fakeUserRepo{byEmail: map[string]*models.User{}},
		todos: &fakeTodoRepo{byID: map[string]models.Todo{}},
	}
}

func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *fakeRepoManager) Todos(dbx.DBTX) todos.Repository { return m.todos }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

type fakeUserRepo struct {
	byEmail map[string]*models.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (*models.User, error) {
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.byEmail[user.Email] = user
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeTodoRepo struct {
	byID  map[string]models.Todo
	clock time.Time
}

func (r *fakeTodoRepo) ListByUser(_ context.Context, userID string) ([]models.Todo, error) {
	result := []models.Todo{}
	for _, t := range r.byID {
		if t.UserID == userID {
			result = append(result, t)
		}
	}
	// newest first, like the postgres implementation
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeTodoRepo) Create(_ context.Context, todo *models.Todo) (*models.Todo, error) {
	if r.clock.IsZero() {
		r.clock = time.Now()
	}
	r.clock = r.clock.Add(time.Second)
	todo.CreatedAt = r.clock
	todo.UpdatedAt = todo.CreatedAt
	r.byID[todo.ID] = *todo
	return todo, nil
}

func (r *fakeTodoRepo) GetByID(_ context.Context, userID, id string) (*models.Todo, error) {
	t, ok := r.byID[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return &t, nil
}

func (r *fakeTodoRepo) Update(_ context.Context, todo *models.Todo) (*models.Todo, error) {
	stored, ok := r.byID[todo.ID]
	if !ok || stored.UserID != todo.UserID {
		return nil, common.ErrorNotFound
	}
	todo.CreatedAt = stored.CreatedAt
	todo.UpdatedAt = time.Now()
	r.byID[todo.ID] = *todo
	return todo, nil
}

func (r *fakeTodoRepo) Delete(_ context.Context, userID, id string) error {
	t, ok := r.byID[id]
	if !ok || t.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}
