// Package server initializes and runs the backend: it opens the database,
// applies migrations, wires services to the HTTP API, and handles graceful
// shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"todokeeper/internal/logging"
	"todokeeper/internal/server/config"
	"todokeeper/internal/server/denylist"
	"todokeeper/internal/server/httpapi"
	"todokeeper/internal/server/repositories/repomanager"
	"todokeeper/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *http.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var dl denylist.Store
	if cfg.RedisAddr != "" {
		dl = denylist.NewRedisStore(cfg.RedisAddr)
		logger.Info(ctx, "using redis revoked-token list", "addr", cfg.RedisAddr)
	} else {
		dl = denylist.NewMemoryStore()
		logger.Info(ctx, "using in-process revoked-token list")
	}

	userService := services.NewUserService(db, rm, cfg)
	todoService := services.NewTodoService(db, rm)

	api := httpapi.NewServer(userService, todoService, dl, cfg.SecretKey, logger)

	return &App{
		config: cfg,
		logger: logger,
		db:     db,
		server: &http.Server{Addr: cfg.EndpointAddr, Handler: api},
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddr)

	app.initSignalHandler(cancelFunc)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			app.logger.Error(ctx, err.Error())
		}
	case <-ctx.Done():
		app.logger.Info(ctx, "Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.server.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
