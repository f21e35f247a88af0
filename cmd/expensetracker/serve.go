package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"expensetracker/internal/cli"
	apphttp "expensetracker/internal/http"
	applog "expensetracker/internal/log"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API for a local UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(app *cli.App) error {
				addr := app.Config.Addr()
				if port != "" {
					addr = ":" + port
				}
				return serve(cmd.Context(), addr, app)
			})
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default: $PORT or 8081)")
	return cmd
}

// serve runs the server until ctx is cancelled, then drains in-flight
// requests.
func serve(ctx context.Context, addr string, app *cli.App) error {
	logger := app.Logger.WithComponent(applog.ComponentApp)
	srv := apphttp.NewServer(addr, apphttp.Deps{
		Reader:         app.Store,
		Expenses:       app.Expenses,
		Exports:        app.Exports,
		Backend:        app.Backend,
		Logger:         app.Logger,
		RequestTimeout: app.Config.RequestTimeout,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting expensetracker server",
			"addr", addr,
			applog.FieldBackend, app.Config.DataBackend,
			"export_targets", app.Exports.Targets())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
			return err
		}
		logger.Info("Server stopped gracefully")
		return nil
	})
	return g.Wait()
}
