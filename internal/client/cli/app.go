package cli

import (
	"bufio"
	"context"
	"database/sql"
	"net/http"
	"os"

	"todokeeper/internal/client/api"
	"todokeeper/internal/client/config"
	"todokeeper/internal/client/models"
	"todokeeper/internal/client/session"
	"todokeeper/internal/client/store"
	"todokeeper/internal/logging"
)

// sessionManager is the slice of session.Manager the commands need.
// Tests substitute a stub.
type sessionManager interface {
	SignUp(ctx context.Context, email, password, confirmPassword string) error
	SignIn(ctx context.Context, email, password string) error
	SignOut(ctx context.Context)
	ForceSignOut(ctx context.Context)
	Restore(ctx context.Context)
	State() session.State
	CurrentUser() *models.User
}

type App struct {
	config  *config.Config
	session sessionManager
	api     api.Client
	log     logging.Logger
	reader  *bufio.Reader
	db      *sql.DB

	// todos is the locally rendered list, reconciled from server-confirmed
	// entities after each mutation.
	todos []models.Todo
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	st, db, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	app := &App{config: cfg, log: log, reader: bufio.NewReader(os.Stdin), db: db}

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	apiClient := api.NewHTTPClient(cfg.ServerURL, st, httpClient, app.onUnauthorized, log)

	app.api = apiClient
	app.session = session.NewManager(apiClient, st, app.onNavigate, log)

	return app, nil
}

// onUnauthorized translates the API client's 401 event into a forced
// sign-out. The client has already cleared the stored token by the time this
// fires.
func (a *App) onUnauthorized() {
	printlnFn("Session expired, please sign in again.")
	a.session.ForceSignOut(context.Background())
}

func (a *App) onNavigate(route string) {
	switch route {
	case session.RouteTodos:
		if u := a.session.CurrentUser(); u != nil {
			printlnFn("Signed in as " + u.Email)
		}
	case session.RouteSignIn:
		a.todos = nil
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.StateAuthenticated
}

func (a *App) status() string {
	if u := a.session.CurrentUser(); u != nil {
		return u.Email
	}
	return "signed out"
}

// Run restores a persisted session (if any) and enters the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.session.Restore(ctx)
	if u := a.session.CurrentUser(); u != nil {
		printlnFn("Welcome back, " + u.Email)
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}
