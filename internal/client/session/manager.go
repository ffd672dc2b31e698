// Package session owns the client's authentication state machine and its
// persistence: anonymous -> authenticating -> authenticated, back to
// anonymous on sign-out or authorization failure.
package session

import (
	"context"
	"sync"

	"todokeeper/internal/client/api"
	"todokeeper/internal/client/models"
	"todokeeper/internal/client/store"
	"todokeeper/internal/logging"
)

// State is the session manager's externally visible authentication state.
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
)

// Routes passed to the navigation callback. The manager never navigates
// itself; the hosting application decides what a route means.
const (
	RouteSignIn = "/signin"
	RouteTodos  = "/todos"
)

const minPasswordLen = 8

// Manager is an explicitly owned session manager instance: construct at
// application start, call Restore once, pass by reference to consumers.
type Manager struct {
	api      api.Client
	store    store.Store
	navigate func(route string)
	log      logging.Logger

	mu      sync.Mutex
	state   State
	user    *models.User
	lastErr string
	loading bool
}

// NewManager wires a manager to its collaborators. navigate may be nil.
// The manager starts in the anonymous state with the loading flag set; the
// flag stays true until Restore resolves.
func NewManager(apiClient api.Client, st store.Store, navigate func(route string), log logging.Logger) *Manager {
	if navigate == nil {
		navigate = func(string) {}
	}
	return &Manager{
		api:      apiClient,
		store:    st,
		navigate: navigate,
		log:      log,
		state:    StateAnonymous,
		loading:  true,
	}
}

// State returns the current authentication state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CurrentUser returns the authenticated user, or nil when anonymous.
func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// LastError returns the stored human-readable message of the most recent
// authentication failure, for inline display.
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// Loading reports whether the initial Restore is still in flight.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Manager) fail(err error) error {
	m.mu.Lock()
	m.state = StateAnonymous
	m.lastErr = err.Error()
	m.mu.Unlock()
	return err
}

func (m *Manager) succeed(ctx context.Context, res *models.AuthResult) error {
	if err := m.store.SaveSession(ctx, res.Session, &res.User); err != nil {
		return m.fail(err)
	}
	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = &res.User
	m.lastErr = ""
	m.mu.Unlock()
	m.navigate(RouteTodos)
	return nil
}

// SignUp registers a new account. On success the credential and user are
// persisted, the state becomes authenticated, and navigation to the todo
// list is triggered. On failure the state returns to anonymous, the
// normalized message is stored for display, and the error is returned.
func (m *Manager) SignUp(ctx context.Context, email, password, confirmPassword string) error {
	m.setState(StateAuthenticating)

	// Same pre-checks the backend enforces; catching them locally saves a
	// round trip and keeps the message identical either way.
	if password != confirmPassword {
		return m.fail(api.NewValidationError("Passwords do not match"))
	}
	if len(password) < minPasswordLen {
		return m.fail(api.NewValidationError("Password must be at least 8 characters"))
	}

	res, err := m.api.SignUp(ctx, email, password, confirmPassword)
	if err != nil {
		return m.fail(err)
	}
	return m.succeed(ctx, res)
}

// SignIn authenticates an existing account. Same contract as SignUp.
func (m *Manager) SignIn(ctx context.Context, email, password string) error {
	m.setState(StateAuthenticating)

	res, err := m.api.SignIn(ctx, email, password)
	if err != nil {
		return m.fail(err)
	}
	return m.succeed(ctx, res)
}

// SignOut ends the session. The remote call is fire-and-forget; local state
// is cleared and navigation to sign-in happens regardless of its outcome.
func (m *Manager) SignOut(ctx context.Context) {
	_ = m.api.SignOut(ctx)
	m.clearLocal(ctx)
}

// ForceSignOut drops local session state without a remote call. The hosting
// application calls this from the API client's onUnauthorized callback; by
// then the client has already cleared the stored token.
func (m *Manager) ForceSignOut(ctx context.Context) {
	m.clearLocal(ctx)
}

func (m *Manager) clearLocal(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "clearing persisted session failed", "error", err.Error())
	}
	m.mu.Lock()
	m.state = StateAnonymous
	m.user = nil
	m.mu.Unlock()
	m.navigate(RouteSignIn)
}

// Restore rehydrates the session from the persisted credential at startup.
// On success the user is refreshed from the backend and the state becomes
// authenticated without a fresh sign-in. Any failure clears the persisted
// credential and resolves to anonymous. The loading flag is lowered in both
// cases.
func (m *Manager) Restore(ctx context.Context) {
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	token, err := m.store.Token(ctx)
	if err != nil {
		m.log.Warn(ctx, "reading persisted credential failed", "error", err.Error())
		return
	}
	if token == "" {
		return
	}

	m.setState(StateAuthenticating)

	// Show the persisted record while the refresh is in flight. The backend's
	// answer replaces or clears it below.
	if saved, err := m.store.SavedUser(ctx); err == nil && saved != nil {
		m.mu.Lock()
		m.user = saved
		m.mu.Unlock()
	}

	user, err := m.api.GetCurrentUser(ctx)
	if err != nil {
		m.log.Debug(ctx, "rehydration failed", "error", err.Error())
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			m.log.Warn(ctx, "clearing persisted session failed", "error", clearErr.Error())
		}
		m.mu.Lock()
		m.state = StateAnonymous
		m.user = nil
		m.mu.Unlock()
		return
	}

	// Replace the persisted record with the backend's representation.
	if err := m.store.SaveUser(ctx, user); err != nil {
		m.log.Warn(ctx, "persisting refreshed user failed", "error", err.Error())
	}

	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = user
	m.mu.Unlock()
}
