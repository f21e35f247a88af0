package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"expensetracker/internal/cli"
	"expensetracker/internal/core"
)

func listCmd() *cobra.Command {
	var (
		f      core.Filter
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List expenses, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(app *cli.App) error {
				res := app.Store.Filter(f)
				out := cmd.OutOrStdout()
				if asJSON {
					return writeJSON(out, res)
				}
				if res.Count == 0 {
					fmt.Fprintln(out, "No expenses found")
					return nil
				}
				if err := printExpenses(out, res.Expenses); err != nil {
					return err
				}
				fmt.Fprintf(out, "\n%d expenses, total %s\n", res.Count, res.Total)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&f.Query, "search", "s", "", "only descriptions containing this text (case-insensitive)")
	cmd.Flags().StringVarP(&f.CategoryID, "category", "c", "", "only this category id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
