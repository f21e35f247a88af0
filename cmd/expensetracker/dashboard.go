package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"expensetracker/internal/cli"
)

func dashboardCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show totals, this month's spending and recent expenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(app *cli.App) error {
				d := app.Store.Snapshot(time.Now())
				out := cmd.OutOrStdout()
				if asJSON {
					return writeJSON(out, d)
				}

				fmt.Fprintf(out, "Total spent:  %s\n", d.Total)
				fmt.Fprintf(out, "This month:   %s\n\n", d.ThisMonth)
				if len(d.ByCategory) == 0 {
					fmt.Fprintln(out, "No expenses yet. Add one with `expensetracker add`.")
					return nil
				}
				if err := printCategoryTotals(out, d.ByCategory); err != nil {
					return err
				}
				fmt.Fprintln(out, "\nRecent")
				return printExpenses(out, d.Recent)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}
