package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"expensetracker/internal/cli"
)

func deleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an expense",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return withApp(cmd, func(app *cli.App) error {
				e, ok := app.Store.Get(id)
				if !ok {
					return fmt.Errorf("expense %s not found", id)
				}
				out := cmd.OutOrStdout()
				if !force {
					printExpense(out, e)
					if !confirm(cmd.InOrStdin(), out, "Delete this expense?") {
						fmt.Fprintln(out, "Operation canceled.")
						return nil
					}
				}
				found, err := app.Expenses.DeleteExpense(cmd.Context(), id)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("expense %s not found", id)
				}
				fmt.Fprintf(out, "Expense %s deleted\n", id)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}
