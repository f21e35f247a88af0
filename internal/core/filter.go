package core

import (
	"slices"
	"strings"
)

// Filter selects expenses for the list screen. Zero values match everything.
type Filter struct {
	// Query is matched case-insensitively against the description, as
	// typed: surrounding spaces are part of the match.
	Query      string
	CategoryID string
}

// FilterResult is the filtered list, newest first, with its count and total.
type FilterResult struct {
	Expenses []Expense `json:"expenses"`
	Count    int       `json:"count"`
	Total    Money     `json:"total"`
}

func (f Filter) Matches(e Expense) bool {
	if f.CategoryID != "" && e.Category.ID != f.CategoryID {
		return false
	}
	q := strings.ToLower(f.Query)
	return q == "" || strings.Contains(strings.ToLower(e.Description), q)
}

func (f Filter) Apply(expenses []Expense) FilterResult {
	matched := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Matches(e) {
			matched = append(matched, e)
		}
	}
	SortNewestFirst(matched)
	return FilterResult{Expenses: matched, Count: len(matched), Total: Total(matched)}
}

// SortNewestFirst sorts in place by CreatedAt descending. Ties keep their
// relative order.
func SortNewestFirst(expenses []Expense) {
	slices.SortStableFunc(expenses, func(a, b Expense) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// Recent returns up to n expenses, newest first. The input is not modified.
func Recent(expenses []Expense, n int) []Expense {
	out := slices.Clone(expenses)
	SortNewestFirst(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}
