package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmylchreest/outlyne/pkg/outline"
)

// Stdout is the path that selects standard output.
const Stdout = "-"

// SiblingPath returns the outline file written next to input for format,
// e.g. "docs/report.html" → "docs/report_outline.md".
func SiblingPath(input string, format outline.Format) string {
	dir := filepath.Dir(input)
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(dir, stem+"_outline"+format.Extension())
}

// WriteFile writes content to path, creating parent directories, and
// returns the number of bytes written.
func WriteFile(path, content string) (int64, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return int64(len(content)), nil
}

// Open returns a writer for path. An empty path or Stdout selects
// fallback, which is not closed by the returned closer.
func Open(path string, fallback io.Writer) (io.WriteCloser, error) {
	if path == "" || path == Stdout {
		return nopCloser{fallback}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
