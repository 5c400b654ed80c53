// Package server initializes and runs the authentication server. It selects
// the credential store backend, wires the hasher, session store, and gRPC
// endpoint together, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dsmelov/authsvc/internal/logging"
	"github.com/dsmelov/authsvc/internal/server/auth"
	"github.com/dsmelov/authsvc/internal/server/config"
	"github.com/dsmelov/authsvc/internal/server/hashing"
	"github.com/dsmelov/authsvc/internal/server/health"
	"github.com/dsmelov/authsvc/internal/server/migrations"
	"github.com/dsmelov/authsvc/internal/server/sessions"
	"github.com/dsmelov/authsvc/internal/server/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	gs "github.com/dsmelov/authsvc/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	authService *auth.Service
	sessions    *sessions.Store
	health      *health.Server
	db          *sql.DB
}

// newRepository picks the credential store backend. An empty DSN selects the
// in-memory store; otherwise a Postgres pool is opened and migrated.
func newRepository(ctx context.Context, dsn string) (users.Repository, *sql.DB, error) {
	if dsn == "" {
		return users.NewInMemoryRepository(nil), nil, nil
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.UpContext(ctx, db, "."); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return users.NewPostgresRepository(db), db, nil
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewDefault()

	repo, db, err := newRepository(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	hasher := hashing.New(cfg.HashIterations, cfg.SaltSize, nil)
	store := sessions.NewStore(cfg.SessionTokenSize, nil, nil)

	svc, err := auth.NewService(repo, hasher, store, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("auth service init error: %w", err)
	}

	return &App{
		config:      cfg,
		logger:      logger,
		authService: svc,
		sessions:    store,
		health:      health.NewServer(),
		db:          db,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s, err := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.authService, app.health)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.sessions.RunSweeper(ctx, app.config.SessionSweepInterval)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}
}
