package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2025-03-09 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.March || d.Day() != 9 {
		t.Fatalf("unexpected date: %v", d)
	}
	if d.String() != "2025-03-09" {
		t.Fatalf("String() = %q", d.String())
	}
	for _, bad := range []string{"", "09/03/2025", "2025-13-01"} {
		if _, err := ParseDate(bad); !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("%q expected ErrInvalidDate, got %v", bad, err)
		}
	}
}

func TestNewExpenseValidate(t *testing.T) {
	good := NewExpense{
		Date:        NewDate(2025, 1, 1),
		Description: "Lunch",
		Amount:      Money{Cents: 1250},
		Category:    MustCategory("1"),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		mutate func(*NewExpense)
		want   error
	}{
		{func(n *NewExpense) { n.Date = Date{} }, ErrInvalidDate},
		{func(n *NewExpense) { n.Description = "   " }, ErrEmptyDescription},
		{func(n *NewExpense) { n.Description = strings.Repeat("x", MaxDescriptionLength+1) }, ErrDescriptionTooLong},
		{func(n *NewExpense) { n.Amount = Money{} }, ErrInvalidAmount},
		{func(n *NewExpense) { n.Amount = Money{Cents: -5} }, ErrInvalidAmount},
		{func(n *NewExpense) { n.Category = Category{ID: "42"} }, ErrUnknownCategory},
	}
	for i, tc := range bads {
		n := good
		tc.mutate(&n)
		if err := n.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestPatchValidateAndApply(t *testing.T) {
	if err := (Patch{}).Validate(); !errors.Is(err, ErrEmptyPatch) {
		t.Fatalf("expected ErrEmptyPatch, got %v", err)
	}

	bad := Money{Cents: 0}
	if err := (Patch{Amount: &bad}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	created := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	e := Expense{
		ID:          "abc",
		Amount:      Money{Cents: 100},
		Description: "Coffee",
		Category:    MustCategory("1"),
		Date:        NewDate(2025, 1, 1),
		CreatedAt:   created,
	}
	desc := "Taxi"
	cat := MustCategory("2")
	p := Patch{Description: &desc, Category: &cat}
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := e.Apply(p)
	if got.Description != "Taxi" || got.Category.ID != "2" {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.ID != "abc" || !got.CreatedAt.Equal(created) || got.Amount.Cents != 100 {
		t.Fatalf("untouched fields changed: %+v", got)
	}
	if e.Description != "Coffee" {
		t.Fatalf("Apply mutated the receiver")
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	if len(cats) != 8 {
		t.Fatalf("expected 8 categories, got %d", len(cats))
	}
	cats[0].Name = "mutated"
	if c, _ := CategoryByID("1"); c.Name != "Food" {
		t.Fatalf("category set is mutable through Categories(): %+v", c)
	}
	if c, ok := CategoryByID(OtherCategoryID); !ok || c.Name != "Other" {
		t.Fatalf("unexpected other category: %+v ok=%v", c, ok)
	}
	if _, ok := CategoryByID("9"); ok {
		t.Fatalf("expected unknown id to miss")
	}
	if ids := CategoryIDs(); len(ids) != 8 || ids[1] != "2" {
		t.Fatalf("unexpected ids: %v", ids)
	}
}
