package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"expensetracker/internal/cli"
)

func clearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every expense",
		Long:  `Delete every expense and remove the stored slot. This cannot be undone; export first if you want a copy.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(app *cli.App) error {
				out := cmd.OutOrStdout()
				n := len(app.Store.Expenses())
				if !force && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete all %d expenses?", n)) {
					fmt.Fprintln(out, "Operation canceled.")
					return nil
				}
				if err := app.Expenses.ClearAll(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %d expenses\n", n)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")
	return cmd
}
