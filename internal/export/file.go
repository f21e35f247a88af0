package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink writes the document to Path, replacing any existing file.
type FileSink struct {
	Path   string
	Format Format
}

func (s FileSink) Send(_ context.Context, doc Document) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := Write(f, s.Format, doc); err != nil {
		f.Close()
		return fmt.Errorf("write export file: %w", err)
	}
	return f.Close()
}
