// Package cli provides the initialization steps shared by the commands:
// environment loading, logging, config validation and opening the store.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"expensetracker/internal/backend"
	"expensetracker/internal/config"
	"expensetracker/internal/kv"
	applog "expensetracker/internal/log"
	"expensetracker/internal/services"
	"expensetracker/internal/store"
)

// LoadEnvFile loads a .env file for local development. A missing file is
// ignored.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// SetupLogger builds the application logger from cfg and installs it as the
// slog default. The root logger has no component; packages add their own.
func SetupLogger(cfg *config.Config, out io.Writer) *applog.Logger {
	level, err := applog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	logger := applog.New(applog.Config{
		Level:  level,
		Format: cfg.LogFormat,
		Output: out,
	})
	applog.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// App bundles what a command needs once the store is open.
type App struct {
	Config   *config.Config
	Logger   *applog.Logger
	Backend  kv.Store
	Store    *store.Store
	Expenses *services.ExpenseService
	Exports  *services.ExportService

	cleanups []backend.CleanupFunc
}

// Open opens the configured backend, loads the expenses and registers the
// configured export targets. A failed load is logged and leaves the store
// empty, the same as a first run.
func Open(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*App, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	factory := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger)
	res, err := factory.CreateBackend(ctx, bcfg)
	if err != nil {
		return nil, err
	}

	st := store.New(res.Store,
		store.WithKey(cfg.StorageKey),
		store.WithLogger(logger.Logger))
	if err := st.Load(ctx); err != nil {
		logger.WarnContext(ctx, "Starting with an empty expense list", applog.FieldError, err)
	}

	app := &App{
		Config:   cfg,
		Logger:   logger,
		Backend:  res.Store,
		Store:    st,
		Expenses: services.NewExpenseService(st),
		Exports:  services.NewExportService(st, logger.Logger),
		cleanups: []backend.CleanupFunc{res.Cleanup},
	}

	sinks := factory.CreateSinks(ctx, bcfg)
	for name, sink := range sinks.Sinks {
		app.Exports.Register(name, sink)
	}
	app.cleanups = append(app.cleanups, sinks.Cleanup)
	return app, nil
}

// Close releases the export targets and the backend.
func (a *App) Close() error {
	var errs []error
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		if c := a.cleanups[i]; c != nil {
			errs = append(errs, c())
		}
	}
	return errors.Join(errs...)
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
