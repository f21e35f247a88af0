package core

import (
	"cmp"
	"slices"
	"time"
)

// RecentLimit is how many expenses the dashboard lists as recent.
const RecentLimit = 5

// CategoryTotal is the aggregate of every expense in one category.
type CategoryTotal struct {
	Category Category `json:"category"`
	Total    Money    `json:"total"`
	Count    int      `json:"count"`
}

// Dashboard is the home screen summary.
type Dashboard struct {
	Total      Money           `json:"total"`
	ThisMonth  Money           `json:"thisMonth"`
	ByCategory []CategoryTotal `json:"byCategory"`
	Recent     []Expense       `json:"recent"`
}

// Profile holds the profile screen statistics.
type Profile struct {
	Count   int   `json:"count"`
	Total   Money `json:"total"`
	Average Money `json:"average"`
}

// Total sums the amounts. An empty list totals zero.
func Total(expenses []Expense) Money {
	var t Money
	for _, e := range expenses {
		t = t.Add(e.Amount)
	}
	return t
}

// GroupByCategory partitions expenses by category id. Each entry keeps the
// first category value seen for that id. Categories without expenses are
// absent.
func GroupByCategory(expenses []Expense) map[string]CategoryTotal {
	out := make(map[string]CategoryTotal)
	for _, e := range expenses {
		ct, ok := out[e.Category.ID]
		if !ok {
			ct.Category = e.Category
		}
		ct.Total = ct.Total.Add(e.Amount)
		ct.Count++
		out[e.Category.ID] = ct
	}
	return out
}

// SortedTotals orders the grouped totals by total descending, then by
// category id.
func SortedTotals(grouped map[string]CategoryTotal) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(grouped))
	for _, ct := range grouped {
		out = append(out, ct)
	}
	slices.SortFunc(out, func(a, b CategoryTotal) int {
		if c := cmp.Compare(b.Total.Cents, a.Total.Cents); c != 0 {
			return c
		}
		return cmp.Compare(a.Category.ID, b.Category.ID)
	})
	return out
}

// InMonth reports whether the expense date falls in the calendar month of ref.
func (e Expense) InMonth(ref time.Time) bool {
	return e.Date.Year() == ref.Year() && e.Date.Month() == ref.Month()
}

// BuildDashboard computes the home screen summary as of now.
func BuildDashboard(expenses []Expense, now time.Time) Dashboard {
	var month []Expense
	for _, e := range expenses {
		if e.InMonth(now) {
			month = append(month, e)
		}
	}
	return Dashboard{
		Total:      Total(expenses),
		ThisMonth:  Total(month),
		ByCategory: SortedTotals(GroupByCategory(expenses)),
		Recent:     Recent(expenses, RecentLimit),
	}
}

// BuildProfile computes count, total and average. The average is rounded
// half up to the cent and is zero for an empty list.
func BuildProfile(expenses []Expense) Profile {
	p := Profile{Count: len(expenses), Total: Total(expenses)}
	if p.Count > 0 {
		n := int64(p.Count)
		p.Average = Money{Cents: (p.Total.Cents*2 + n) / (2 * n)}
	}
	return p
}
