package store

import (
	"encoding/json"
	"fmt"
	"time"

	"expensetracker/internal/core"
)

// record is the persisted shape of one expense. Timestamps are RFC 3339
// strings so blobs written by other clients (e.g. JavaScript toISOString)
// decode unchanged.
type record struct {
	ID          string         `json:"id"`
	Amount      core.Money     `json:"amount"`
	Description string         `json:"description"`
	Category    categoryRecord `json:"category"`
	Date        string         `json:"date"`
	CreatedAt   string         `json:"createdAt"`
}

type categoryRecord struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

func toRecord(e core.Expense) record {
	return record{
		ID:          e.ID,
		Amount:      e.Amount,
		Description: e.Description,
		Category: categoryRecord{
			ID:    e.Category.ID,
			Name:  e.Category.Name,
			Color: e.Category.Color,
			Icon:  e.Category.Icon,
		},
		Date:      e.Date.UTC().Format(time.RFC3339Nano),
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func encode(expenses []core.Expense) ([]byte, error) {
	return json.Marshal(toRecords(expenses))
}

func encodeIndent(expenses []core.Expense) ([]byte, error) {
	return json.MarshalIndent(toRecords(expenses), "", "  ")
}

func toRecords(expenses []core.Expense) []record {
	records := make([]record, 0, len(expenses))
	for _, e := range expenses {
		records = append(records, toRecord(e))
	}
	return records
}

// decode parses a persisted blob. Category ids outside the fixed set are
// replaced by Other and reported in unknown.
func decode(data []byte) (expenses []core.Expense, unknown []string, err error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil, fmt.Errorf("decode expenses: %w", err)
	}

	expenses = make([]core.Expense, 0, len(records))
	for i, r := range records {
		date, err := parseTimestamp(r.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("expense %d (%s): date: %w", i, r.ID, err)
		}
		createdAt, err := parseTimestamp(r.CreatedAt)
		if err != nil {
			return nil, nil, fmt.Errorf("expense %d (%s): createdAt: %w", i, r.ID, err)
		}

		// The category is re-resolved from its id; stored name/color/icon
		// are not trusted.
		cat, ok := core.CategoryByID(r.Category.ID)
		if !ok {
			unknown = append(unknown, r.Category.ID)
			cat = core.MustCategory(core.OtherCategoryID)
		}

		expenses = append(expenses, core.Expense{
			ID:          r.ID,
			Amount:      r.Amount,
			Description: r.Description,
			Category:    cat,
			Date:        core.Date{Time: date},
			CreatedAt:   createdAt,
		})
	}
	return expenses, unknown, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	// Bare dates appear in hand-edited blobs.
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return t, nil
}
