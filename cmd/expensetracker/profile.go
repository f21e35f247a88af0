package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"expensetracker/internal/cli"
)

func profileCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show expense statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(app *cli.App) error {
				p := app.Store.Stats()
				out := cmd.OutOrStdout()
				if asJSON {
					return writeJSON(out, p)
				}
				fmt.Fprintf(out, "Expenses:  %d\n", p.Count)
				fmt.Fprintf(out, "Total:     %s\n", p.Total)
				fmt.Fprintf(out, "Average:   %s\n", p.Average)
				fmt.Fprintf(out, "Storage:   %s (key %q)\n", app.Config.DataBackend, app.Store.Key())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}
