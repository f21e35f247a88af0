// Package export turns the expense list into documents and delivers them to
// sinks: files, HTTP responses, a message broker or a spreadsheet.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"expensetracker/internal/core"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

var ErrUnknownFormat = errors.New("unknown export format")

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatXLSX, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType is the MIME type of a rendered document.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/json"
	}
}

// Document is a point-in-time export. JSON holds the list in the persisted
// wire format.
type Document struct {
	GeneratedAt time.Time
	Expenses    []core.Expense
	JSON        []byte
}

// Filename suggests a download name such as expenses-20250601-093000.xlsx.
func (d Document) Filename(f Format) string {
	return fmt.Sprintf("expenses-%s.%s", d.GeneratedAt.UTC().Format("20060102-150405"), f)
}

// Sink delivers a document somewhere.
type Sink interface {
	Send(ctx context.Context, doc Document) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, doc Document) error

func (f SinkFunc) Send(ctx context.Context, doc Document) error { return f(ctx, doc) }

// Write renders doc in format f.
func Write(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatJSON:
		_, err := w.Write(doc.JSON)
		return err
	case FormatXLSX:
		return WriteXLSX(w, doc)
	case FormatCSV:
		return WriteCSV(w, doc)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}
