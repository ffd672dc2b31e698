package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"todokeeper/internal/client/models"
	"todokeeper/internal/common"
	"todokeeper/internal/logging"
)

const basePath = "/api/v1"

// maxErrorBody caps how much of an error response is read for normalization.
const maxErrorBody = 64 << 10

// HTTPClient talks to the todokeeper REST backend. It attaches the stored
// credential as a bearer token on every request and centralizes 401 handling:
// any response with status 401 clears the credential and fires the
// onUnauthorized callback before the error is returned, regardless of which
// operation triggered it.
type HTTPClient struct {
	baseURL        string
	http           *http.Client
	creds          CredentialSource
	onUnauthorized func()
	log            logging.Logger
}

// NewHTTPClient builds a client for the backend at serverURL. httpClient may
// be nil, in which case http.DefaultClient is used (no client-side timeout).
// onUnauthorized may be nil when the host has no navigation to perform.
func NewHTTPClient(serverURL string, creds CredentialSource, httpClient *http.Client, onUnauthorized func(), log logging.Logger) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{
		baseURL:        strings.TrimRight(serverURL, "/") + basePath,
		http:           httpClient,
		creds:          creds,
		onUnauthorized: onUnauthorized,
		log:            log,
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any, fallback string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return newError(ErrInternal, fallback)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return newError(ErrInternal, fallback)
	}
	req.Header.Set("Content-Type", "application/json")

	if token, err := c.creds.Token(ctx); err == nil && token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "error", err.Error())
		return newError(ErrUnavailable, fallback)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return c.mapError(ctx, resp.StatusCode, raw, fallback)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.log.Warn(ctx, "unexpected response body", "method", method, "path", path, "error", err.Error())
			return newError(ErrInternal, fallback)
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return nil
}

// mapError converts an HTTP failure status into the error taxonomy. 401 is
// special: the credential is cleared and onUnauthorized fires here so the
// handling is uniform across call sites.
func (c *HTTPClient) mapError(ctx context.Context, status int, body []byte, fallback string) error {
	msg := normalizeError(body, fallback)

	switch {
	case status == http.StatusUnauthorized:
		if err := c.creds.ClearToken(ctx); err != nil {
			c.log.Warn(ctx, "clearing credential failed", "error", err.Error())
		}
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return newError(ErrUnauthorized, msg)
	case status == http.StatusNotFound:
		return newError(ErrNotFound, msg)
	case status >= 500:
		return newError(ErrInternal, msg)
	default:
		return newError(ErrValidation, msg)
	}
}

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

type todoListResponse struct {
	Todos []models.Todo `json:"todos"`
}

func (c *HTTPClient) SignUp(ctx context.Context, email, password, confirmPassword string) (*models.AuthResult, error) {
	var res models.AuthResult
	req := signUpRequest{Email: email, Password: password, ConfirmPassword: confirmPassword}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &res, "Signup failed"); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*models.AuthResult, error) {
	var res models.AuthResult
	req := signInRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/auth/signin", req, &res, "Sign in failed"); err != nil {
		return nil, err
	}
	return &res, nil
}

// SignOut is best-effort: the server call may fail (network down, token
// already dead) and the caller clears local state regardless, so failures are
// logged and swallowed.
func (c *HTTPClient) SignOut(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/signout", nil, nil, "Sign out failed"); err != nil {
		c.log.Debug(ctx, "remote sign-out failed", "error", err.Error())
	}
	return nil
}

func (c *HTTPClient) GetCurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user, "Failed to load user"); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *HTTPClient) ListTodos(ctx context.Context) ([]models.Todo, error) {
	var res todoListResponse
	if err := c.do(ctx, http.MethodGet, "/todos", nil, &res, "Failed to load todos"); err != nil {
		return nil, err
	}
	return res.Todos, nil
}

func (c *HTTPClient) CreateTodo(ctx context.Context, description string) (*models.Todo, error) {
	var todo models.Todo
	req := createTodoRequest{Description: description}
	if err := c.do(ctx, http.MethodPost, "/todos", req, &todo, "Failed to create todo"); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *HTTPClient) GetTodo(ctx context.Context, id string) (*models.Todo, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	var todo models.Todo
	if err := c.do(ctx, http.MethodGet, "/todos/"+url.PathEscape(id), nil, &todo, "Failed to load todo"); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *HTTPClient) UpdateTodo(ctx context.Context, id string, upd models.TodoUpdate) (*models.Todo, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	var todo models.Todo
	if err := c.do(ctx, http.MethodPut, "/todos/"+url.PathEscape(id), upd, &todo, "Failed to update todo"); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *HTTPClient) ToggleTodo(ctx context.Context, id string) (*models.Todo, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	var todo models.Todo
	if err := c.do(ctx, http.MethodPatch, "/todos/"+url.PathEscape(id)+"/toggle", nil, &todo, "Failed to toggle todo"); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *HTTPClient) DeleteTodo(ctx context.Context, id string) error {
	if err := requireID(id); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil, nil, "Failed to delete todo")
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return newError(ErrValidation, "missing todo id")
	}
	return nil
}
