// Package logging provides leveled logging and generation tracing for trustgrid.
// It offers two complementary outputs:
//   - A leveled slog.Logger for stderr (operational output)
//   - A TraceLogger for structured JSONL generation traces (generations.jsonl)
package logging

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// LevelTrace is a custom slog level below Debug. At this level every cell
// update count is logged as it happens.
const LevelTrace = slog.LevelDebug - 4

// TraceFileName is the name of the generation trace inside its directory.
const TraceFileName = "generations.jsonl"

// ParseLevel maps a string level name to a slog.Level.
// Supported values: "info", "debug", "trace" (case-insensitive).
// Unknown values default to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a leveled slog.Logger writing to w.
func NewLogger(level string, w io.Writer) *slog.Logger {
	lvl := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// GenerationRecord is one line of the generation trace.
type GenerationRecord struct {
	RunID           string         `json:"run_id"`
	Generation      int            `json:"generation"`
	Changed         int            `json:"changed"`
	TotalInfoPoints int            `json:"total_info_points"`
	Counts          map[string]int `json:"counts"`
}

// TraceLogger appends generation records to a JSONL file. It is safe for
// concurrent use. A nil TraceLogger is valid; all methods are no-ops on a
// nil receiver.
type TraceLogger struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// NewTraceLogger opens dir/generations.jsonl for append. At "info" level, or
// when the file cannot be opened, it returns nil.
func NewTraceLogger(dir string, level string) *TraceLogger {
	if ParseLevel(level) == slog.LevelInfo || dir == "" {
		return nil
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil
	}

	f, err := os.OpenFile(filepath.Join(dir, TraceFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil
	}

	return &TraceLogger{file: f, enc: json.NewEncoder(f)}
}

// Log writes rec as a single JSONL line with a "time" field prepended.
func (tl *TraceLogger) Log(rec GenerationRecord) {
	if tl == nil {
		return
	}

	entry := struct {
		Time string `json:"time"`
		GenerationRecord
	}{
		Time:             time.Now().UTC().Format(time.RFC3339Nano),
		GenerationRecord: rec,
	}

	tl.mu.Lock()
	defer tl.mu.Unlock()
	if tl.file == nil {
		return
	}
	_ = tl.enc.Encode(entry)
}

// Close closes the underlying file.
func (tl *TraceLogger) Close() {
	if tl == nil {
		return
	}

	tl.mu.Lock()
	defer tl.mu.Unlock()
	if tl.file == nil {
		return
	}
	tl.file.Close()
	tl.file = nil
}
