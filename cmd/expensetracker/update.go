package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"expensetracker/internal/cli"
	"expensetracker/internal/services"
)

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of an existing expense",
		Long: `Change fields of an existing expense. Only the flags given are
changed; the id and creation time never change.`,
		Example: `  expensetracker update 0190c0de-... --amount 15 --description "Team lunch"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p services.PatchInput
			flags := cmd.Flags()
			for name, dst := range map[string]**string{
				"amount":      &p.Amount,
				"description": &p.Description,
				"category":    &p.CategoryID,
				"date":        &p.Date,
			} {
				if flags.Changed(name) {
					v, _ := flags.GetString(name)
					*dst = &v
				}
			}

			return withApp(cmd, func(app *cli.App) error {
				e, found, err := app.Expenses.UpdateExpense(cmd.Context(), args[0], p)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("expense %s not found", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Expense updated")
				printExpense(cmd.OutOrStdout(), e)
				return nil
			})
		},
	}

	cmd.Flags().String("amount", "", "new amount")
	cmd.Flags().String("description", "", "new description")
	cmd.Flags().StringP("category", "c", "", "new category id")
	cmd.Flags().String("date", "", "new date as YYYY-MM-DD")
	return cmd
}
