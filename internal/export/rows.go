package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"expensetracker/internal/core"
)

// Header is the column layout shared by the tabular formats.
var Header = []string{"ID", "Date", "Description", "Category", "Amount", "Created at"}

// Rows returns one string row per expense in the order of Header.
func Rows(expenses []core.Expense) [][]string {
	rows := make([][]string, 0, len(expenses))
	for _, e := range expenses {
		rows = append(rows, []string{
			e.ID,
			e.Date.String(),
			e.Description,
			e.Category.Name,
			e.Amount.String(),
			e.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return rows
}

func WriteCSV(w io.Writer, doc Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(Rows(doc.Expenses)); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}
