package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"expensetracker/internal/core"
)

// categoriesCmd needs no store: the category set is fixed.
func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the expense categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tCATEGORY\tCOLOR")
			for _, c := range core.Categories() {
				fmt.Fprintf(tw, "%s\t%s %s\t%s\n", c.ID, c.Icon, c.Name, c.Color)
			}
			return tw.Flush()
		},
	}
}
