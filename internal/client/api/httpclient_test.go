package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todokeeper/internal/client/models"
	"todokeeper/internal/logging"
)

type memCreds struct {
	token       string
	clearCalled bool
}

func (m *memCreds) Token(context.Context) (string, error) { return m.token, nil }

func (m *memCreds) ClearToken(context.Context) error {
	m.clearCalled = true
	m.token = ""
	return nil
}

func discardLogger() logging.Logger {
	return logging.NewJSONLogger(io.Discard)
}

func newTestClient(t *testing.T, handler http.Handler, creds *memCreds, onUnauthorized func()) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, creds, srv.Client(), onUnauthorized, discardLogger())
}

func TestSignIn_Success(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/auth/signin", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body["email"])

		json.NewEncoder(w).Encode(map[string]any{
			"user":    map[string]any{"id": "u-1", "email": "a@b.com"},
			"session": map[string]any{"token": "tok-1", "expiresAt": "2030-01-01T00:00:00Z"},
		})
	})
	c := newTestClient(t, handler, &memCreds{}, nil)

	res, err := c.SignIn(context.Background(), "a@b.com", "longenough1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", res.User.Email)
	assert.Equal(t, "tok-1", res.Session.Token)
}

func TestSignIn_InvalidCredentialsMessageSurfaced(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error": {"code": "INVALID_CREDENTIALS", "message": "Invalid email or password"}}`)
	})
	c := newTestClient(t, handler, &memCreds{}, nil)

	_, err := c.SignIn(context.Background(), "a@b.com", "wrong")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid email or password", err.Error())
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		io.WriteString(w, `{"todos": []}`)
	})
	c := newTestClient(t, handler, &memCreds{token: "tok-xyz"}, nil)

	_, err := c.ListTodos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-xyz", gotAuth)
}

func TestNoBearerHeaderWithoutToken(t *testing.T) {
	var hasAuth bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		io.WriteString(w, `{"todos": []}`)
	})
	c := newTestClient(t, handler, &memCreds{}, nil)

	_, err := c.ListTodos(context.Background())
	require.NoError(t, err)
	assert.False(t, hasAuth)
}

func TestUnauthorized_ClearsCredentialAndFiresCallback(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail": "Not authenticated"}`)
	})

	creds := &memCreds{token: "stale"}
	var callbackFired bool
	c := newTestClient(t, handler, creds, func() { callbackFired = true })

	_, err := c.ListTodos(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)

	assert.True(t, creds.clearCalled, "401 must clear the stored credential")
	assert.True(t, callbackFired, "401 must fire onUnauthorized")
	assert.Equal(t, "Not authenticated", err.Error())
}

func TestUnauthorized_UniformAcrossOperations(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail": "Not authenticated"}`)
	})

	calls := []func(c *HTTPClient) error{
		func(c *HTTPClient) error { _, err := c.GetCurrentUser(context.Background()); return err },
		func(c *HTTPClient) error { _, err := c.ListTodos(context.Background()); return err },
		func(c *HTTPClient) error { _, err := c.CreateTodo(context.Background(), "x"); return err },
		func(c *HTTPClient) error { _, err := c.ToggleTodo(context.Background(), "id-1"); return err },
		func(c *HTTPClient) error { return c.DeleteTodo(context.Background(), "id-1") },
	}

	for _, call := range calls {
		creds := &memCreds{token: "stale"}
		var fired bool
		c := newTestClient(t, handler, creds, func() { fired = true })

		err := call(c)
		require.ErrorIs(t, err, ErrUnauthorized)
		assert.True(t, creds.clearCalled)
		assert.True(t, fired)
	}
}

func TestSignOut_SwallowsFailures(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := newTestClient(t, handler, &memCreds{token: "tok"}, nil)

	assert.NoError(t, c.SignOut(context.Background()))
}

func TestTodoCRUDPathsAndMethods(t *testing.T) {
	type seen struct{ method, path string }
	var got seen

	todoJSON := `{"id": "t-1", "userId": "u-1", "description": "milk", "completed": false}`
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = seen{r.Method, r.URL.Path}
		switch {
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			io.WriteString(w, todoJSON)
		}
	})
	c := newTestClient(t, handler, &memCreds{token: "tok"}, nil)
	ctx := context.Background()

	todo, err := c.CreateTodo(ctx, "milk")
	require.NoError(t, err)
	assert.Equal(t, "milk", todo.Description)
	assert.Equal(t, seen{"POST", "/api/v1/todos"}, got)

	_, err = c.GetTodo(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, seen{"GET", "/api/v1/todos/t-1"}, got)

	desc := "bread"
	_, err = c.UpdateTodo(ctx, "t-1", models.TodoUpdate{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, seen{"PUT", "/api/v1/todos/t-1"}, got)

	_, err = c.ToggleTodo(ctx, "t-1")
	require.NoError(t, err)
	assert.Equal(t, seen{"PATCH", "/api/v1/todos/t-1/toggle"}, got)

	require.NoError(t, c.DeleteTodo(ctx, "t-1"))
	assert.Equal(t, seen{"DELETE", "/api/v1/todos/t-1"}, got)
}

func TestUpdateTodo_OmitsUnsetFields(t *testing.T) {
	var body []byte
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{"id": "t-1"}`)
	})
	c := newTestClient(t, handler, &memCreds{token: "tok"}, nil)

	completed := true
	_, err := c.UpdateTodo(context.Background(), "t-1", models.TodoUpdate{Completed: &completed})
	require.NoError(t, err)
	assert.JSONEq(t, `{"completed": true}`, string(body))
}

func TestEmptyID_RejectedLocally(t *testing.T) {
	var called bool
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	c := newTestClient(t, handler, &memCreds{token: "tok"}, nil)

	_, err := c.ToggleTodo(context.Background(), "  ")
	require.ErrorIs(t, err, ErrValidation)
	assert.False(t, called)
}

func TestNotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error": {"code": "NOT_FOUND", "message": "Todo not found"}}`)
	})
	c := newTestClient(t, handler, &memCreds{token: "tok"}, nil)

	_, err := c.GetTodo(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Todo not found", err.Error())
}

func TestServerError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c := newTestClient(t, handler, &memCreds{token: "tok"}, nil)

	_, err := c.ListTodos(context.Background())
	require.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, "Failed to load todos", err.Error())
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // nothing listens anymore

	c := NewHTTPClient(url, &memCreds{}, nil, nil, discardLogger())

	_, err := c.ListTodos(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, "Failed to load todos", err.Error())
}
