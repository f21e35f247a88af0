package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"expensetracker/internal/export"
)

type recordingSink struct {
	docs []export.Document
	err  error
}

func (r *recordingSink) Send(_ context.Context, doc export.Document) error {
	if r.err != nil {
		return r.err
	}
	r.docs = append(r.docs, doc)
	return nil
}

func TestExportService(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	if _, err := svc.CreateExpense(ctx, ExpenseInput{Amount: "4.20", Description: "Coffee", CategoryID: "1"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	exports := NewExportService(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	exports.now = func() time.Time { return time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC) }

	good := &recordingSink{}
	bad := &recordingSink{err: errors.New("broker down")}
	exports.Register("queue", good)
	exports.Register("broken", bad)

	if got := exports.Targets(); len(got) != 2 || got[0] != "broken" || got[1] != "queue" {
		t.Fatalf("Targets() = %v", got)
	}

	doc, err := exports.Export(ctx, "queue")
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(good.docs) != 1 || len(doc.Expenses) != 1 || doc.GeneratedAt.Hour() != 20 {
		t.Fatalf("unexpected document %+v", doc)
	}
	if len(doc.JSON) == 0 || doc.JSON[0] != '[' {
		t.Fatalf("document JSON = %q", doc.JSON)
	}
	if len(st.Expenses()) != 1 {
		t.Fatalf("export must not modify the store")
	}

	if _, err := exports.Export(ctx, "broken"); err == nil {
		t.Fatal("expected sink error")
	}
	if _, err := exports.Export(ctx, "nowhere"); !errors.Is(err, ErrUnknownTarget) {
		t.Fatalf("expected ErrUnknownTarget, got %v", err)
	}
}

func TestDocumentIsOneSnapshot(t *testing.T) {
	svc, st := newTestService(t)
	exports := NewExportService(st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	const adds = 200
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < adds; i++ {
			in := ExpenseInput{Amount: "1", Description: fmt.Sprintf("item %d", i), CategoryID: "1"}
			if _, err := svc.CreateExpense(ctx, in); err != nil {
				t.Errorf("create: %v", err)
				return
			}
		}
	}()

	for i := 0; i < adds; i++ {
		doc, err := exports.Document()
		if err != nil {
			t.Fatalf("Document() error = %v", err)
		}
		var records []json.RawMessage
		if err := json.Unmarshal(doc.JSON, &records); err != nil {
			t.Fatalf("decode document JSON: %v", err)
		}
		if len(records) != len(doc.Expenses) {
			t.Fatalf("JSON has %d records, Expenses has %d", len(records), len(doc.Expenses))
		}
	}
	wg.Wait()
}
