// Command expensetracker records expenses and shows where the money went.
// Each subcommand is one screen or settings action; serve exposes the same
// operations as a local JSON API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"expensetracker/internal/cli"
)

var version = "dev"

func main() {
	ctx, stop := cli.SignalContext(context.Background())
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "expensetracker",
		Short:         "Track personal expenses by category",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `expensetracker keeps a list of expenses (amount, description, category,
date) in a single local slot and shows totals, per-category breakdowns and
statistics. Storage is chosen with DATA_BACKEND (memory, file, sqlite, redis,
mongo); see .env.example for the other settings.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if envFile != "" {
				return cli.LoadEnvFile(envFile)
			}
			return cli.LoadEnvFile()
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default: .env if present)")

	root.AddCommand(
		addCmd(),
		listCmd(),
		updateCmd(),
		deleteCmd(),
		dashboardCmd(),
		profileCmd(),
		categoriesCmd(),
		exportCmd(),
		clearCmd(),
		serveCmd(),
	)
	return root
}

// withApp opens the configured store for the duration of fn.
func withApp(cmd *cobra.Command, fn func(app *cli.App) error) error {
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	logger := cli.SetupLogger(cfg, cmd.ErrOrStderr())

	app, err := cli.Open(cmd.Context(), cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if cerr := app.Close(); cerr != nil {
			logger.Error("Failed to close store", "error", cerr)
		}
	}()
	return fn(app)
}
