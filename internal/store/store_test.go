package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/kv/memory"
)

var errBackendDown = errors.New("backend down")

// flakyBackend wraps a memory store and fails on demand.
type flakyBackend struct {
	*memory.Store
	failGet    bool
	failSet    bool
	failRemove bool
	sets       int
}

func (f *flakyBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if f.failGet {
		return nil, false, errBackendDown
	}
	return f.Store.Get(ctx, key)
}

func (f *flakyBackend) Set(ctx context.Context, key string, value []byte) error {
	f.sets++
	if f.failSet {
		return errBackendDown
	}
	return f.Store.Set(ctx, key, value)
}

func (f *flakyBackend) Remove(ctx context.Context, key string) error {
	if f.failRemove {
		return errBackendDown
	}
	return f.Store.Remove(ctx, key)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newLoaded(t *testing.T, backend *flakyBackend) *Store {
	t.Helper()
	s := New(backend, WithLogger(quietLogger()))
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func lunch() core.NewExpense {
	return core.NewExpense{
		Amount:      core.Money{Cents: 1250},
		Description: "Lunch",
		Category:    core.MustCategory("1"),
		Date:        core.NewDate(2025, 6, 1),
	}
}

func TestEmptyStore(t *testing.T) {
	s := newLoaded(t, &flakyBackend{Store: memory.New()})
	if s.Loading() {
		t.Fatalf("loading should be false after Load")
	}
	if got := s.TotalAmount(); got.Cents != 0 {
		t.Fatalf("total = %d", got.Cents)
	}
	if got := s.GroupedByCategory(); len(got) != 0 {
		t.Fatalf("grouped = %v", got)
	}
}

func TestLoadingBeforeLoad(t *testing.T) {
	s := New(memory.New(), WithLogger(quietLogger()))
	if !s.Loading() {
		t.Fatalf("a new store should be loading")
	}
}

func TestAddThenReload(t *testing.T) {
	ctx := context.Background()
	backend := &flakyBackend{Store: memory.New()}
	s := newLoaded(t, backend)

	before := time.Now().UTC()
	e, err := s.Add(ctx, lunch())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if e.ID == "" {
		t.Fatalf("expected an id")
	}
	if e.CreatedAt.Before(before.Add(-time.Millisecond)) {
		t.Fatalf("createdAt %v older than call time %v", e.CreatedAt, before)
	}

	reloaded := newLoaded(t, backend)
	got := reloaded.Expenses()
	if len(got) != 1 {
		t.Fatalf("expected 1 expense after reload, got %d", len(got))
	}
	r := got[0]
	if r.ID != e.ID || r.Amount != e.Amount || r.Description != "Lunch" || r.Category != core.MustCategory("1") {
		t.Fatalf("reloaded record differs: %+v vs %+v", r, e)
	}
	if !r.CreatedAt.Equal(e.CreatedAt) || !r.Date.Equal(e.Date.Time) {
		t.Fatalf("timestamps differ: %v/%v vs %v/%v", r.CreatedAt, r.Date, e.CreatedAt, e.Date)
	}
}

func TestLunchScenario(t *testing.T) {
	s := newLoaded(t, &flakyBackend{Store: memory.New()})
	if _, err := s.Add(context.Background(), lunch()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if n := len(s.Expenses()); n != 1 {
		t.Fatalf("expected 1 record, got %d", n)
	}
	if got := s.TotalAmount().Cents; got != 1250 {
		t.Fatalf("total = %d", got)
	}
	food := s.GroupedByCategory()["1"]
	if food.Total.Cents != 1250 || food.Count != 1 {
		t.Fatalf("food group = %+v", food)
	}
}

func TestTransportScenario(t *testing.T) {
	ctx := context.Background()
	s := newLoaded(t, &flakyBackend{Store: memory.New()})
	for _, cents := range []int64{1000, 2000} {
		in := core.NewExpense{
			Amount:      core.Money{Cents: cents},
			Description: "Ride",
			Category:    core.MustCategory("2"),
			Date:        core.NewDate(2025, 6, 2),
		}
		if _, err := s.Add(ctx, in); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	grouped := s.GroupedByCategory()
	if len(grouped) != 1 {
		t.Fatalf("expected only transport, got %v", grouped)
	}
	if tr := grouped["2"]; tr.Total.Cents != 3000 || tr.Count != 2 {
		t.Fatalf("transport group = %+v", tr)
	}
}

func TestAddThenDelete(t *testing.T) {
	ctx := context.Background()
	backend := &flakyBackend{Store: memory.New()}
	s := newLoaded(t, backend)

	e, err := s.Add(ctx, lunch())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	other, err := s.Add(ctx, lunch())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	ok, err := s.Delete(ctx, e.ID)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if got := s.Expenses(); len(got) != 1 || got[0].ID != other.ID {
		t.Fatalf("expected only %s left, got %+v", other.ID, got)
	}

	ok, err = s.Delete(ctx, other.ID)
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if len(s.Expenses()) != 0 || s.TotalAmount().Cents != 0 {
		t.Fatalf("store should be empty")
	}
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	backend := &flakyBackend{Store: memory.New()}
	s := newLoaded(t, backend)
	if _, err := s.Add(ctx, lunch()); err != nil {
		t.Fatalf("add: %v", err)
	}
	sets := backend.sets

	ok, err := s.Delete(ctx, "missing")
	if ok || err != nil {
		t.Fatalf("expected silent no-op, got ok=%v err=%v", ok, err)
	}
	if len(s.Expenses()) != 1 {
		t.Fatalf("length changed")
	}
	if backend.sets != sets {
		t.Fatalf("no-op delete must not write")
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := newLoaded(t, &flakyBackend{Store: memory.New()})
	e, err := s.Add(ctx, lunch())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	amount := core.Money{Cents: 999}
	desc := "Dinner"
	updated, ok, err := s.Update(ctx, e.ID, core.Patch{Amount: &amount, Description: &desc})
	if err != nil || !ok {
		t.Fatalf("update: ok=%v err=%v", ok, err)
	}
	if updated.ID != e.ID || !updated.CreatedAt.Equal(e.CreatedAt) {
		t.Fatalf("id/createdAt must not change: %+v", updated)
	}
	if updated.Amount.Cents != 999 || updated.Description != "Dinner" || updated.Category.ID != "1" {
		t.Fatalf("unexpected merge: %+v", updated)
	}
	if got, _ := s.Get(e.ID); got != updated {
		t.Fatalf("store not updated: %+v", got)
	}

	if _, ok, err := s.Update(ctx, "missing", core.Patch{Description: &desc}); ok || err != nil {
		t.Fatalf("unknown id: ok=%v err=%v", ok, err)
	}
}

func TestWriteFailureLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	backend := &flakyBackend{Store: memory.New()}
	s := newLoaded(t, backend)
	e, err := s.Add(ctx, lunch())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	backend.failSet = true
	if _, err := s.Add(ctx, lunch()); !errors.Is(err, errBackendDown) {
		t.Fatalf("add: expected backend error, got %v", err)
	}
	if _, err := s.Delete(ctx, e.ID); !errors.Is(err, errBackendDown) {
		t.Fatalf("delete: expected backend error, got %v", err)
	}
	desc := "changed"
	if _, _, err := s.Update(ctx, e.ID, core.Patch{Description: &desc}); !errors.Is(err, errBackendDown) {
		t.Fatalf("update: expected backend error, got %v", err)
	}

	got := s.Expenses()
	if len(got) != 1 || got[0] != e {
		t.Fatalf("state changed after failed writes: %+v", got)
	}

	backend.failRemove = true
	if err := s.Clear(ctx); !errors.Is(err, errBackendDown) {
		t.Fatalf("clear: expected backend error, got %v", err)
	}
	if len(s.Expenses()) != 1 {
		t.Fatalf("failed clear emptied the store")
	}
}

func TestLoadFailures(t *testing.T) {
	tests := []struct {
		name    string
		backend *flakyBackend
	}{
		{"read error", &flakyBackend{Store: memory.New(), failGet: true}},
		{"malformed json", &flakyBackend{Store: memory.NewWithSeed(map[string][]byte{DefaultKey: []byte(`{not json`)})}},
		{"wrong shape", &flakyBackend{Store: memory.NewWithSeed(map[string][]byte{DefaultKey: []byte(`{"id":"x"}`)})}},
		{"amount out of range", &flakyBackend{Store: memory.NewWithSeed(map[string][]byte{
			DefaultKey: []byte(`[{"id":"a","amount":100000000000000000,"description":"x","category":{"id":"1"},"date":"2025-01-01","createdAt":"2025-01-01T00:00:00Z"}]`),
		})}},
		{"bad timestamp", &flakyBackend{Store: memory.NewWithSeed(map[string][]byte{
			DefaultKey: []byte(`[{"id":"a","amount":1,"description":"x","category":{"id":"1"},"date":"yesterday","createdAt":"2025-01-01T00:00:00Z"}]`),
		})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.backend, WithLogger(quietLogger()))
			if err := s.Load(context.Background()); err == nil {
				t.Fatalf("expected error")
			}
			if s.Loading() {
				t.Fatalf("loading must be false after a failed load")
			}
			if got := s.Expenses(); got == nil || len(got) != 0 {
				t.Fatalf("expected empty list, got %#v", got)
			}
		})
	}
}

func TestLoadForeignBlob(t *testing.T) {
	blob := `[
	  {"id":"1717171717171","amount":12.5,"description":"Lunch",
	   "category":{"id":"1","name":"Food","color":"#EF4444","icon":"🍽️"},
	   "date":"2025-01-02T03:04:05.678Z","createdAt":"2025-01-02T03:04:05.678Z"},
	  {"id":"1717171717172","amount":"3","description":"Mystery",
	   "category":{"id":"42","name":"Gone","color":"#000000","icon":"?"},
	   "date":"2025-01-03","createdAt":"2025-01-03T10:00:00+02:00"}
	]`
	backend := &flakyBackend{Store: memory.NewWithSeed(map[string][]byte{"custom": []byte(blob)})}
	s := New(backend, WithLogger(quietLogger()), WithKey("custom"))
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	got := s.Expenses()
	if len(got) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(got))
	}
	want := time.Date(2025, 1, 2, 3, 4, 5, 678_000_000, time.UTC)
	if !got[0].CreatedAt.Equal(want) || !got[0].Date.Equal(want) {
		t.Fatalf("js timestamp not revived: %v", got[0].CreatedAt)
	}
	if got[0].Amount.Cents != 1250 {
		t.Fatalf("amount = %d", got[0].Amount.Cents)
	}
	if got[1].Category.ID != core.OtherCategoryID {
		t.Fatalf("unknown category should fall back to Other, got %+v", got[1].Category)
	}
	if !got[1].CreatedAt.Equal(time.Date(2025, 1, 3, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("offset not honoured: %v", got[1].CreatedAt)
	}
	if got[1].Date.String() != "2025-01-03" {
		t.Fatalf("bare date = %s", got[1].Date)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	backend := &flakyBackend{Store: memory.New()}
	s := newLoaded(t, backend)
	if _, err := s.Add(ctx, lunch()); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(s.Expenses()) != 0 {
		t.Fatalf("expected empty list")
	}
	if backend.Keys() != 0 {
		t.Fatalf("expected persisted key removed")
	}
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	s := newLoaded(t, &flakyBackend{Store: memory.New()})

	empty, err := s.Export()
	if err != nil || string(empty) != "[]" {
		t.Fatalf("empty export = %q, %v", empty, err)
	}

	clock := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	s = New(memory.New(), WithLogger(quietLogger()), WithClock(func() time.Time { return clock }),
		WithIDGenerator(func() string { return "fixed" }))
	if _, err := s.Add(ctx, lunch()); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err := s.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	for _, want := range []string{
		`"id": "fixed"`,
		`"amount": 12.5`,
		`"createdAt": "2025-06-01T09:30:00Z"`,
		`"date": "2025-06-01T00:00:00Z"`,
		"\n  {",
	} {
		if !strings.Contains(string(out), want) {
			t.Errorf("export missing %q:\n%s", want, out)
		}
	}
}

func TestConcurrentAddsAreNotLost(t *testing.T) {
	ctx := context.Background()
	backend := &flakyBackend{Store: memory.New()}
	s := newLoaded(t, backend)

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := lunch()
			in.Description = fmt.Sprintf("item %d", i)
			if _, err := s.Add(ctx, in); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("add: %v", err)
	}

	reloaded := newLoaded(t, backend)
	if got := len(reloaded.Expenses()); got != n {
		t.Fatalf("expected %d persisted expenses, got %d", n, got)
	}
	ids := make(map[string]bool)
	for _, e := range reloaded.Expenses() {
		if ids[e.ID] {
			t.Fatalf("duplicate id %s", e.ID)
		}
		ids[e.ID] = true
	}
}
