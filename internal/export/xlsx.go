package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"expensetracker/internal/core"
)

const (
	SheetExpenses   = "Expenses"
	SheetByCategory = "By category"
)

// WriteXLSX renders doc as a workbook with a row per expense and a
// per-category summary sheet. Amounts are written as numbers.
func WriteXLSX(w io.Writer, doc Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetExpenses); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeExpenseSheet(f, doc.Expenses); err != nil {
		return err
	}

	if _, err := f.NewSheet(SheetByCategory); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := writeCategorySheet(f, doc.Expenses); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeExpenseSheet(f *excelize.File, expenses []core.Expense) error {
	if err := setRow(f, SheetExpenses, 1, toAny(Header)); err != nil {
		return err
	}
	for i, e := range expenses {
		row := []any{
			e.ID,
			e.Date.String(),
			e.Description,
			e.Category.Name,
			e.Amount.Decimal().InexactFloat64(),
			e.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		if err := setRow(f, SheetExpenses, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeCategorySheet(f *excelize.File, expenses []core.Expense) error {
	if err := setRow(f, SheetByCategory, 1, []any{"Category", "Count", "Total"}); err != nil {
		return err
	}
	for i, ct := range core.SortedTotals(core.GroupByCategory(expenses)) {
		row := []any{ct.Category.Name, ct.Count, ct.Total.Decimal().InexactFloat64()}
		if err := setRow(f, SheetByCategory, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
