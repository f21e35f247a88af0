package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"expensetracker/internal/core"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printExpenses(w io.Writer, expenses []core.Expense) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tAMOUNT\tDESCRIPTION")
	for _, e := range expenses {
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\t%s\n",
			e.ID, e.Date, e.Category.Icon, e.Category.Name, e.Amount, e.Description)
	}
	return tw.Flush()
}

func printExpense(w io.Writer, e core.Expense) {
	fmt.Fprintf(w, "ID:          %s\n", e.ID)
	fmt.Fprintf(w, "Amount:      %s\n", e.Amount)
	fmt.Fprintf(w, "Description: %s\n", e.Description)
	fmt.Fprintf(w, "Category:    %s %s\n", e.Category.Icon, e.Category.Name)
	fmt.Fprintf(w, "Date:        %s\n", e.Date)
}

func printCategoryTotals(w io.Writer, totals []core.CategoryTotal) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "CATEGORY\tCOUNT\tTOTAL")
	for _, ct := range totals {
		fmt.Fprintf(tw, "%s %s\t%d\t%s\n", ct.Category.Icon, ct.Category.Name, ct.Count, ct.Total)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// confirm asks a yes/no question on out and reads the answer from in. Only
// "y" and "yes" count as yes.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s (y/N): ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
