// Package logx is the append-only debug logger (spec.md §5 "Logging is
// append-only to a single file with no locking required by the core" and
// §6 "Persisted state"), grounded on original_source/src/utils.rs's
// debug_logs/log/DEBUG_ENABLED. We add a mutex regardless: pkg/present.Loop
// can put the presenter on a goroutine separate from the CPU step loop, and
// both may want to log.
package logx

import (
	"fmt"
	"os"
	"sync"

	"github.com/davecgh/go-spew/spew"
)

// Logger appends lines to a single file. The zero value is usable but
// writes nowhere useful until Open is called; Enabled gates whether
// Tracef/Dump do anything, mirroring the source's DEBUG_ENABLED constant
// as a runtime field instead of a compile-time one.
type Logger struct {
	Enabled bool

	mu   sync.Mutex
	file *os.File
}

// Open creates (or appends to) the log file at path. Per spec.md §7.3,
// failure to open the file is a fatal I/O error at startup for any caller
// that chooses to treat it that way; Open itself just returns the error.
func Open(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logx: opening log file: %w", err)
	}
	return &Logger{Enabled: true, file: f}, nil
}

// Close releases the underlying file handle.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Line appends a single line verbatim, used directly by cpu.CPU.Trace.
func (l *Logger) Line(s string) {
	if !l.Enabled || l.file == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.file, s)
}

// Tracef formats and appends a line, the general-purpose counterpart to
// Line for callers outside the per-instruction hot path.
func (l *Logger) Tracef(format string, args ...any) {
	l.Line(fmt.Sprintf(format, args...))
}

// Dump appends a go-spew structured rendering of v for verbose
// register/instruction dumps, the same role spew.Sdump plays in the pack's
// TUI debugger. No dmgcore command calls it.
func (l *Logger) Dump(label string, v any) {
	if !l.Enabled || l.file == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.file, "%s:\n%s", label, spew.Sdump(v))
}
