package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"expensetracker/internal/core"
)

// ExpenseStore is the subset of the store the service mutates.
type ExpenseStore interface {
	Add(ctx context.Context, in core.NewExpense) (core.Expense, error)
	Update(ctx context.Context, id string, p core.Patch) (core.Expense, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Clear(ctx context.Context) error
}

// ExpenseInput is a new expense as typed by the user. Amount is kept as text
// so both "12.50" and "12,50" are accepted.
type ExpenseInput struct {
	Amount      string `json:"amount" validate:"required,amount"`
	Description string `json:"description" validate:"required,notblank,max=200"`
	CategoryID  string `json:"category" validate:"required,category"`
	// Date is YYYY-MM-DD; today when empty.
	Date string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// PatchInput is a partial update. Nil fields are left unchanged.
type PatchInput struct {
	Amount      *string `json:"amount" validate:"omitnil,amount"`
	Description *string `json:"description" validate:"omitnil,notblank,max=200"`
	CategoryID  *string `json:"category" validate:"omitnil,category"`
	Date        *string `json:"date" validate:"omitnil,datetime=2006-01-02"`
}

func (p PatchInput) isEmpty() bool {
	return p.Amount == nil && p.Description == nil && p.CategoryID == nil && p.Date == nil
}

// ExpenseService validates user input before it reaches the store.
type ExpenseService struct {
	store     ExpenseStore
	validator *Validator
	now       func() time.Time
}

func NewExpenseService(store ExpenseStore) *ExpenseService {
	return &ExpenseService{store: store, validator: NewValidator(), now: time.Now}
}

// CreateExpense validates in and adds it to the store.
func (s *ExpenseService) CreateExpense(ctx context.Context, in ExpenseInput) (core.Expense, error) {
	in.Description = strings.TrimSpace(in.Description)
	if err := s.validator.Struct(in); err != nil {
		return core.Expense{}, err
	}

	ne, err := s.toNewExpense(in)
	if err != nil {
		return core.Expense{}, err
	}
	if err := ne.Validate(); err != nil {
		return core.Expense{}, &ValidationError{Fields: map[string]string{"expense": err.Error()}}
	}

	e, err := s.store.Add(ctx, ne)
	if err != nil {
		return core.Expense{}, fmt.Errorf("create expense: %w", err)
	}
	return e, nil
}

func (s *ExpenseService) toNewExpense(in ExpenseInput) (core.NewExpense, error) {
	amount, err := core.ParseMoney(in.Amount)
	if err != nil {
		return core.NewExpense{}, &ValidationError{Fields: map[string]string{"amount": err.Error()}}
	}
	date := core.Today(s.now())
	if in.Date != "" {
		if date, err = core.ParseDate(in.Date); err != nil {
			return core.NewExpense{}, &ValidationError{Fields: map[string]string{"date": err.Error()}}
		}
	}
	return core.NewExpense{
		Amount:      amount,
		Description: in.Description,
		Category:    core.MustCategory(in.CategoryID),
		Date:        date,
	}, nil
}

// UpdateExpense validates p and merges it into the expense with id. found is
// false when no such expense exists.
func (s *ExpenseService) UpdateExpense(ctx context.Context, id string, p PatchInput) (e core.Expense, found bool, err error) {
	if p.isEmpty() {
		return core.Expense{}, false, &ValidationError{Fields: map[string]string{"patch": core.ErrEmptyPatch.Error()}}
	}
	if p.Description != nil {
		d := strings.TrimSpace(*p.Description)
		p.Description = &d
	}
	if err := s.validator.Struct(p); err != nil {
		return core.Expense{}, false, err
	}

	patch, err := toPatch(p)
	if err != nil {
		return core.Expense{}, false, err
	}

	e, found, err = s.store.Update(ctx, id, patch)
	if err != nil {
		return core.Expense{}, found, fmt.Errorf("update expense: %w", err)
	}
	return e, found, nil
}

func toPatch(p PatchInput) (core.Patch, error) {
	var out core.Patch
	if p.Amount != nil {
		m, err := core.ParseMoney(*p.Amount)
		if err != nil {
			return core.Patch{}, &ValidationError{Fields: map[string]string{"amount": err.Error()}}
		}
		out.Amount = &m
	}
	if p.Description != nil {
		d := *p.Description
		out.Description = &d
	}
	if p.CategoryID != nil {
		c := core.MustCategory(*p.CategoryID)
		out.Category = &c
	}
	if p.Date != nil {
		d, err := core.ParseDate(*p.Date)
		if err != nil {
			return core.Patch{}, &ValidationError{Fields: map[string]string{"date": err.Error()}}
		}
		out.Date = &d
	}
	if err := out.Validate(); err != nil {
		return core.Patch{}, &ValidationError{Fields: map[string]string{"patch": err.Error()}}
	}
	return out, nil
}

// DeleteExpense removes the expense with id. found is false when no such
// expense exists.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id string) (bool, error) {
	found, err := s.store.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete expense: %w", err)
	}
	return found, nil
}

// ClearAll removes every expense.
func (s *ExpenseService) ClearAll(ctx context.Context) error {
	return s.store.Clear(ctx)
}
