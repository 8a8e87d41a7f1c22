// Package logging builds the application logger. Output goes to a file so it
// never interleaves with the TUI frame.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

type Options struct {
	// Path of the log file. Empty discards all output.
	Path  string
	Debug bool
}

// New returns a logger and the closer for its file.
func New(opts Options) (*log.Logger, io.Closer, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		return Discard(), noopCloser{}, nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWriter(f, opts.Debug), f, nil
}

func NewWriter(w io.Writer, debug bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "tudu",
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

func Discard() *log.Logger {
	return log.New(io.Discard)
}
