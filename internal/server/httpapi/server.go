// Package httpapi exposes the REST API under /api/v1: signup, signin,
// signout, current user, and the todo CRUD operations.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"todokeeper/internal/logging"
	"todokeeper/internal/server/denylist"
	"todokeeper/internal/server/models"
	"todokeeper/internal/server/services"
)

// userService is the slice of services.UserService the handlers need.
type userService interface {
	SignUp(ctx context.Context, email, password string) (*models.User, *services.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.User, *services.Session, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// todoService is the slice of services.TodoService the handlers need.
type todoService interface {
	List(ctx context.Context, userID string) ([]models.Todo, error)
	Create(ctx context.Context, userID, description string) (*models.Todo, error)
	Get(ctx context.Context, userID, id string) (*models.Todo, error)
	Update(ctx context.Context, userID, id string, upd services.TodoUpdate) (*models.Todo, error)
	Toggle(ctx context.Context, userID, id string) (*models.Todo, error)
	Delete(ctx context.Context, userID, id string) error
}

type Server struct {
	router   *mux.Router
	users    userService
	todos    todoService
	denylist denylist.Store
	secret   []byte
	log      logging.Logger
}

func NewServer(users userService, todos todoService, dl denylist.Store, secretKey string, log logging.Logger) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		users:    users,
		todos:    todos,
		denylist: dl,
		secret:   []byte(secretKey),
		log:      log,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/auth/signup", s.handleSignUp).Methods(http.MethodPost)
	api.HandleFunc("/auth/signin", s.handleSignIn).Methods(http.MethodPost)
	api.HandleFunc("/auth/signout", s.handleSignOut).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(s.authMiddleware)
	authed.HandleFunc("/auth/me", s.handleMe).Methods(http.MethodGet)
	authed.HandleFunc("/todos", s.handleListTodos).Methods(http.MethodGet)
	authed.HandleFunc("/todos", s.handleCreateTodo).Methods(http.MethodPost)
	authed.HandleFunc("/todos/{id}", s.handleGetTodo).Methods(http.MethodGet)
	authed.HandleFunc("/todos/{id}", s.handleUpdateTodo).Methods(http.MethodPut)
	authed.HandleFunc("/todos/{id}/toggle", s.handleToggleTodo).Methods(http.MethodPatch)
	authed.HandleFunc("/todos/{id}", s.handleDeleteTodo).Methods(http.MethodDelete)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
