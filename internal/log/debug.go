// Package log is the process-wide diagnostic log. Output is buffered until a
// file is configured, and the most recent lines are always kept in memory so
// the host can show them in its output panel.
package log

import (
	"bytes"
	"log"
	"os"
	"sync"
)

// DefaultRecentLines bounds the in-memory tail.
const DefaultRecentLines = 500

// DiagnosticLogger writes to a file and/or a startup buffer, and keeps a tail
// of recent lines. It implements io.Writer for the standard log.Logger.
type DiagnosticLogger struct {
	mu      sync.Mutex
	file    *os.File
	buffer  []byte
	discard bool
	recent  []string
	limit   int
	partial []byte
}

var (
	globalLogger = &DiagnosticLogger{limit: DefaultRecentLines}
	stdLogger    = log.New(globalLogger, "", log.LstdFlags|log.Lmicroseconds)
)

// Write implements io.Writer.
func (l *DiagnosticLogger) Write(p []byte) (n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.remember(p)

	if l.discard {
		return len(p), nil
	}

	if l.file != nil {
		n, err = l.file.Write(p)
		_ = l.file.Sync()
		return n, err
	}

	// p may be reused by the caller
	b := make([]byte, len(p))
	copy(b, p)
	l.buffer = append(l.buffer, b...)
	return len(p), nil
}

func (l *DiagnosticLogger) remember(p []byte) {
	data := append(l.partial, p...)
	l.partial = nil
	for {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			if len(data) > 0 {
				l.partial = append([]byte(nil), data...)
			}
			return
		}
		l.recent = append(l.recent, string(data[:idx]))
		if over := len(l.recent) - l.limit; over > 0 {
			l.recent = append([]string(nil), l.recent[over:]...)
		}
		data = data[idx+1:]
	}
}

// SetFile sets the log file path, creating it if needed, and flushes anything
// buffered so far. An empty path discards buffered and future file output.
func SetFile(path string) error {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()

	if globalLogger.file != nil {
		_ = globalLogger.file.Close()
		globalLogger.file = nil
	}

	if path == "" {
		globalLogger.discard = true
		globalLogger.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		globalLogger.discard = true
		globalLogger.buffer = nil
		return err
	}

	globalLogger.file = f
	globalLogger.discard = false

	if len(globalLogger.buffer) > 0 {
		_, _ = f.Write(globalLogger.buffer)
		_ = f.Sync()
		globalLogger.buffer = nil
	}

	return nil
}

// Printf writes a formatted diagnostic line.
func Printf(format string, args ...any) {
	stdLogger.Printf(format, args...)
}

// Println writes a diagnostic line.
func Println(v ...any) {
	stdLogger.Println(v...)
}

// Recent returns up to n of the most recent complete lines, oldest first.
// A non-positive n returns everything retained.
func Recent(n int) []string {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()

	lines := globalLogger.recent
	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return append([]string(nil), lines...)
}

// Close closes the log file if open.
func Close() error {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()

	if globalLogger.file == nil {
		return nil
	}

	err := globalLogger.file.Close()
	globalLogger.file = nil
	return err
}
