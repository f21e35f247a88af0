// Package store holds the authoritative expense list and persists it as one
// JSON array under a single key of a kv backend.
//
// Every mutation holds the write lock across the storage call and touches the
// in-memory list only after the write succeeds, so concurrent callers cannot
// lose each other's changes and a failed write leaves the state unchanged.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"expensetracker/internal/core"
	"expensetracker/internal/kv"
	applog "expensetracker/internal/log"
)

// DefaultKey is the storage key used when none is configured.
const DefaultKey = "expenses"

type Store struct {
	mu       sync.RWMutex
	backend  kv.Store
	key      string
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
	expenses []core.Expense
	loading  bool
}

type Option func(*Store)

func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for createdAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUIDv7 id source.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		key:      DefaultKey,
		logger:   slog.Default(),
		now:      time.Now,
		newID:    newUUID,
		expenses: []core.Expense{},
		loading:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(applog.FieldComponent, applog.ComponentStore)
	return s
}

func newUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Key returns the storage key the store reads and writes.
func (s *Store) Key() string { return s.key }

// Load replaces the in-memory list with the persisted one. On a read or
// decode failure the list becomes empty and the error is logged and returned.
// Loading is false once Load returns, whatever the outcome.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() { s.loading = false }()

	data, found, err := s.backend.Get(ctx, s.key)
	if err != nil {
		s.expenses = []core.Expense{}
		s.logger.ErrorContext(ctx, "Failed to read expenses",
			applog.FieldOperation, applog.OpLoad, applog.FieldKey, s.key, applog.FieldError, err)
		return fmt.Errorf("load expenses: %w", err)
	}
	if !found {
		s.expenses = []core.Expense{}
		s.logger.DebugContext(ctx, "No stored expenses", applog.FieldKey, s.key)
		return nil
	}

	expenses, unknown, err := decode(data)
	if err != nil {
		s.expenses = []core.Expense{}
		s.logger.ErrorContext(ctx, "Stored expenses are malformed",
			applog.FieldOperation, applog.OpLoad, applog.FieldKey, s.key, applog.FieldError, err)
		return fmt.Errorf("load expenses: %w", err)
	}
	for _, id := range unknown {
		s.logger.WarnContext(ctx, "Unknown category id, using Other",
			applog.FieldCategoryID, id)
	}

	s.expenses = expenses
	s.logger.InfoContext(ctx, "Expenses loaded", applog.FieldCount, len(expenses))
	return nil
}

// persist writes next as the whole collection. Callers hold s.mu.
func (s *Store) persist(ctx context.Context, next []core.Expense) error {
	data, err := encode(next)
	if err != nil {
		return fmt.Errorf("encode expenses: %w", err)
	}
	if err := s.backend.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	return nil
}

// Add stamps the expense with a fresh id and createdAt, appends it and
// persists the list. Input is not validated here.
func (s *Store) Add(ctx context.Context, in core.NewExpense) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := core.Expense{
		ID:          s.newID(),
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
		Date:        in.Date,
		CreatedAt:   s.now().UTC(),
	}

	next := append(slices.Clone(s.expenses), e)
	if err := s.persist(ctx, next); err != nil {
		s.logger.ErrorContext(ctx, "Failed to add expense",
			applog.FieldOperation, applog.OpCreate, applog.FieldError, err)
		return core.Expense{}, err
	}
	s.expenses = next

	s.logger.InfoContext(ctx, "Expense added",
		applog.NewFields().WithExpense(e.ID, e.Amount.String(), e.Category.ID).ToSlice()...)
	return e, nil
}

// Delete removes the expense with id. It reports false, without writing, when
// no such expense exists.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next := slices.Delete(slices.Clone(s.expenses), i, i+1)
	if err := s.persist(ctx, next); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete expense",
			applog.FieldOperation, applog.OpDelete, applog.FieldExpenseID, id, applog.FieldError, err)
		return false, err
	}
	s.expenses = next

	s.logger.InfoContext(ctx, "Expense deleted", applog.FieldExpenseID, id)
	return true, nil
}

// Update merges p into the expense with id. ID and CreatedAt never change.
// It reports false, without writing, when no such expense exists.
func (s *Store) Update(ctx context.Context, id string, p core.Patch) (core.Expense, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return core.Expense{}, false, nil
	}

	updated := s.expenses[i].Apply(p)
	next := slices.Clone(s.expenses)
	next[i] = updated
	if err := s.persist(ctx, next); err != nil {
		s.logger.ErrorContext(ctx, "Failed to update expense",
			applog.FieldOperation, applog.OpUpdate, applog.FieldExpenseID, id, applog.FieldError, err)
		return core.Expense{}, true, err
	}
	s.expenses = next

	s.logger.InfoContext(ctx, "Expense updated",
		applog.NewFields().WithExpense(updated.ID, updated.Amount.String(), updated.Category.ID).ToSlice()...)
	return updated, true, nil
}

// Clear removes the persisted key and empties the list.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Remove(ctx, s.key); err != nil {
		s.logger.ErrorContext(ctx, "Failed to clear expenses",
			applog.FieldOperation, applog.OpClear, applog.FieldError, err)
		return fmt.Errorf("clear expenses: %w", err)
	}
	n := len(s.expenses)
	s.expenses = []core.Expense{}
	s.logger.InfoContext(ctx, "Expenses cleared", applog.FieldCount, n)
	return nil
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.expenses, func(e core.Expense) bool { return e.ID == id })
}

// Expenses returns a copy of the list in insertion order.
func (s *Store) Expenses() []core.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.expenses)
}

// Get returns the expense with id.
func (s *Store) Get(id string) (core.Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.expenses[i], true
	}
	return core.Expense{}, false
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) TotalAmount() core.Money {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.Total(s.expenses)
}

func (s *Store) GroupedByCategory() map[string]core.CategoryTotal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.GroupByCategory(s.expenses)
}

// Export returns the current list as indented JSON in the persisted format.
func (s *Store) Export() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := encodeIndent(s.expenses)
	if err != nil {
		return nil, fmt.Errorf("export expenses: %w", err)
	}
	return data, nil
}

// ExportDocument returns the list and its Export JSON taken under one read
// lock, so both describe the same collection.
func (s *Store) ExportDocument() ([]core.Expense, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := encodeIndent(s.expenses)
	if err != nil {
		return nil, nil, fmt.Errorf("export expenses: %w", err)
	}
	return slices.Clone(s.expenses), data, nil
}

func (s *Store) Snapshot(now time.Time) core.Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.BuildDashboard(s.expenses, now)
}

func (s *Store) Stats() core.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return core.BuildProfile(s.expenses)
}

func (s *Store) Filter(f core.Filter) core.FilterResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return f.Apply(s.expenses)
}
