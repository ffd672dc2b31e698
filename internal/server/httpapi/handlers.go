package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"todokeeper/internal/common"
	"todokeeper/internal/server/auth"
	"todokeeper/internal/server/models"
	"todokeeper/internal/server/services"
)

const (
	minPasswordLen = 8
	// bcrypt truncates input beyond 72 bytes
	maxPasswordLen = 72
)

type signUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createTodoRequest struct {
	Description string `json:"description"`
}

type updateTodoRequest struct {
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type sessionResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type authResponse struct {
	User    userResponse    `json:"user"`
	Session sessionResponse `json:"session"`
}

type todoResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type todoListResponse struct {
	Todos []todoResponse `json:"todos"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt}
}

func newTodoResponse(t *models.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	return true
}

// validatePassword mirrors the client-side pre-checks so a client that skips
// them still gets the same messages.
func validatePassword(password, confirm string) (string, bool) {
	if password != confirm {
		return "Passwords do not match", false
	}
	if len(password) < minPasswordLen {
		return "Password must be at least 8 characters", false
	}
	if len(password) > maxPasswordLen {
		return "Password is too long", false
	}
	return "", true
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Email is required")
		return
	}
	if msg, ok := validatePassword(req.Password, req.ConfirmPassword); !ok {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", msg)
		return
	}

	user, session, err := s.users.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeError(w, http.StatusConflict, "CONFLICT", "Email already registered")
			return
		}
		s.internalError(w, r, "signup failed", err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		User:    newUserResponse(user),
		Session: sessionResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
	})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !decodeBody(w, r, &req) {
		return
	}

	user, session, err := s.users.SignIn(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		s.internalError(w, r, "signin failed", err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		User:    newUserResponse(user),
		Session: sessionResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
	})
}

// handleSignOut revokes the presented token. It never fails the request: a
// missing or broken token means there is nothing to revoke.
func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if token, ok := bearerToken(r); ok {
		if _, expiresAt, err := auth.ParseToken(token, s.secret); err == nil {
			if err := s.denylist.Revoke(ctx, token, expiresAt); err != nil {
				s.log.Error(ctx, "token revocation failed", "error", err.Error())
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully signed out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newUserResponse(currentUser(r.Context())))
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	list, err := s.todos.List(r.Context(), user.ID)
	if err != nil {
		s.internalError(w, r, "list todos failed", err)
		return
	}

	resp := todoListResponse{Todos: []todoResponse{}}
	for i := range list {
		resp.Todos = append(resp.Todos, newTodoResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	var req createTodoRequest
	if !decodeBody(w, r, &req) {
		return
	}

	todo, err := s.todos.Create(r.Context(), user.ID, req.Description)
	if err != nil {
		s.todoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTodoResponse(todo))
}

func (s *Server) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	todo, err := s.todos.Get(r.Context(), user.ID, mux.Vars(r)["id"])
	if err != nil {
		s.todoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTodoResponse(todo))
}

func (s *Server) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	var req updateTodoRequest
	if !decodeBody(w, r, &req) {
		return
	}

	todo, err := s.todos.Update(r.Context(), user.ID, mux.Vars(r)["id"],
		services.TodoUpdate{Description: req.Description, Completed: req.Completed})
	if err != nil {
		s.todoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTodoResponse(todo))
}

func (s *Server) handleToggleTodo(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	todo, err := s.todos.Toggle(r.Context(), user.ID, mux.Vars(r)["id"])
	if err != nil {
		s.todoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newTodoResponse(todo))
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())

	if err := s.todos.Delete(r.Context(), user.ID, mux.Vars(r)["id"]); err != nil {
		s.todoError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// todoError maps service errors from todo operations to HTTP responses.
func (s *Server) todoError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Todo not found")
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", validationMessage(err))
	default:
		s.internalError(w, r, "todo operation failed", err)
	}
}

// validationMessage strips the sentinel prefix so only the human-readable
// part reaches the wire.
func validationMessage(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		msg = msg[idx+2:]
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	s.log.Error(r.Context(), msg, "error", err.Error())
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}
