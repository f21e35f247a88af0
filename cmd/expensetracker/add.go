package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"expensetracker/internal/cli"
	"expensetracker/internal/services"
)

func addCmd() *cobra.Command {
	var in services.ExpenseInput

	cmd := &cobra.Command{
		Use:   "add <amount> <description>",
		Short: "Record a new expense",
		Long: `Record a new expense. The amount accepts "." or "," as the decimal
separator (12.50 or 12,50). The date defaults to today.`,
		Example: `  expensetracker add 12.50 "Lunch" --category 1
  expensetracker add 10,00 "Bus ticket" -c 2 --date 2025-06-02`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Amount = args[0]
			in.Description = args[1]
			return withApp(cmd, func(app *cli.App) error {
				e, err := app.Expenses.CreateExpense(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Expense added")
				printExpense(cmd.OutOrStdout(), e)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&in.CategoryID, "category", "c", "", "category id, as listed by the categories command")
	cmd.Flags().StringVar(&in.Date, "date", "", "date as YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}
