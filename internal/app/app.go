package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vk/flowgrid/internal/engine"
	"github.com/vk/flowgrid/internal/store"
	"github.com/vk/flowgrid/internal/store/postgres"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *engine.Registry
	store    store.Store
	config   *Config
}

// NewApp constructs the main application: an isolated logger, the built-in
// executor registry, and a store chosen by configuration (Postgres when a
// database URL is present, in-memory otherwise). Critical startup failures
// panic; the CLI entrypoint recovers them into a clean exit.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	registry := engine.Builtins()

	var st store.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			panic(fmt.Errorf("failed to connect to database: %w", err))
		}
		pg := postgres.New(pool)
		if err := pg.CreateSchema(context.Background()); err != nil {
			panic(fmt.Errorf("failed to create database schema: %w", err))
		}
		st = pg
		logger.Debug("Using Postgres store.")
	} else {
		st = store.NewMemory()
		logger.Debug("No database configured, using in-memory store.")
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: registry,
		store:    st,
		config:   cfg,
	}
}

// Registry returns the application's executor registry. Primarily for tests
// and for embedding hosts that register custom node types.
func (a *App) Registry() *engine.Registry {
	return a.registry
}

// Store returns the application's store.
func (a *App) Store() store.Store {
	return a.store
}
