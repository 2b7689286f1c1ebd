package logger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// TestLogBuffer collects JSON log lines written by concurrent goroutines.
type TestLogBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

// Write implements io.Writer.
func (b *TestLogBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// String returns everything logged so far.
func (b *TestLogBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Reset discards the captured output.
func (b *TestLogBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// GetLogEntries decodes one JSON object per non-blank line.
func (b *TestLogBuffer) GetLogEntries() ([]map[string]interface{}, error) {
	var entries []map[string]interface{}

	scanner := bufio.NewScanner(strings.NewReader(b.String()))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		entry := map[string]interface{}{}
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("log line %d is not JSON: %w", lineNo, err)
		}
		entries = append(entries, entry)
	}

	return entries, scanner.Err()
}

// SetupTestLogger returns a debug-level JSON logger writing into a fresh
// TestLogBuffer. The logger is also the slog default until the test ends.
func SetupTestLogger(t *testing.T) (*TestLogBuffer, *slog.Logger) {
	t.Helper()

	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	buf := &TestLogBuffer{}
	log := SetupWithWriter(buf, "debug")

	return buf, log
}

// AssertLogContains fails t unless content appears somewhere in the captured logs.
func AssertLogContains(t *testing.T, logBuf *TestLogBuffer, content string) {
	t.Helper()

	if logs := logBuf.String(); !strings.Contains(logs, content) {
		t.Errorf("expected logs to contain %q\nlogs:\n%s", content, logs)
	}
}
