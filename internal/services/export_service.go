package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/export"
	applog "expensetracker/internal/log"
)

// ErrUnknownTarget is returned for an export target that is not registered.
var ErrUnknownTarget = errors.New("unknown export target")

// DocumentSource is the read side of the store used for exports.
type DocumentSource interface {
	ExportDocument() ([]core.Expense, []byte, error)
}

// ExportService builds export documents and delivers them to named sinks.
type ExportService struct {
	source DocumentSource
	sinks  map[string]export.Sink
	now    func() time.Time
	logger *slog.Logger
}

func NewExportService(source DocumentSource, logger *slog.Logger) *ExportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportService{
		source: source,
		sinks:  make(map[string]export.Sink),
		now:    time.Now,
		logger: logger.With(applog.FieldComponent, applog.ComponentExport),
	}
}

// Register adds or replaces the sink for target.
func (s *ExportService) Register(target string, sink export.Sink) {
	s.sinks[target] = sink
}

// Targets returns the registered target names, sorted.
func (s *ExportService) Targets() []string {
	out := make([]string, 0, len(s.sinks))
	for k := range s.sinks {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Document snapshots the current list. The store is not modified.
func (s *ExportService) Document() (export.Document, error) {
	expenses, data, err := s.source.ExportDocument()
	if err != nil {
		return export.Document{}, err
	}
	return export.Document{
		GeneratedAt: s.now().UTC(),
		Expenses:    expenses,
		JSON:        data,
	}, nil
}

// Export sends a fresh document to target.
func (s *ExportService) Export(ctx context.Context, target string) (export.Document, error) {
	sink, ok := s.sinks[target]
	if !ok {
		return export.Document{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownTarget, target, s.Targets())
	}
	return s.ExportTo(ctx, target, sink)
}

// ExportTo sends a fresh document to an ad-hoc sink. name is used for logging.
func (s *ExportService) ExportTo(ctx context.Context, name string, sink export.Sink) (export.Document, error) {
	doc, err := s.Document()
	if err != nil {
		return export.Document{}, err
	}
	if err := sink.Send(ctx, doc); err != nil {
		s.logger.ErrorContext(ctx, "Export failed",
			applog.FieldTarget, name, applog.FieldError, err)
		return export.Document{}, fmt.Errorf("export to %s: %w", name, err)
	}
	s.logger.InfoContext(ctx, "Export delivered",
		applog.FieldTarget, name, applog.FieldCount, len(doc.Expenses))
	return doc, nil
}
