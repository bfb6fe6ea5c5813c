package diagnostics

import (
	"context"
	"fmt"
	"log/slog"

	"captionfix/internal/logging"
)

// Level classifies a diagnostics entry.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
	LevelMerge   Level = "merge"
)

// Entry is one diagnostics record produced by a pass.
type Entry struct {
	Level   Level  `json:"level" yaml:"level"`
	Pass    string `json:"pass,omitempty" yaml:"pass,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// Collector accumulates entries for a single processing call. It is not safe
// for concurrent use; create one per call.
type Collector struct {
	entries []Entry
	logger  *slog.Logger
}

// New returns an empty collector that mirrors entries to logger. A nil logger
// discards the mirror.
func New(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Collector{logger: logger}
}

// Add appends an entry.
func (c *Collector) Add(level Level, pass, message string) {
	entry := Entry{Level: level, Pass: pass, Message: message}
	c.entries = append(c.entries, entry)
	c.mirror(entry)
}

func (c *Collector) Infof(pass, format string, args ...any) {
	c.Add(LevelInfo, pass, fmt.Sprintf(format, args...))
}

func (c *Collector) Warnf(pass, format string, args ...any) {
	c.Add(LevelWarning, pass, fmt.Sprintf(format, args...))
}

func (c *Collector) Errorf(pass, format string, args ...any) {
	c.Add(LevelError, pass, fmt.Sprintf(format, args...))
}

func (c *Collector) Mergef(pass, format string, args ...any) {
	c.Add(LevelMerge, pass, fmt.Sprintf(format, args...))
}

// Entries returns a copy of the recorded entries in insertion order.
func (c *Collector) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Len returns the number of recorded entries.
func (c *Collector) Len() int {
	return len(c.entries)
}

// Count returns how many entries have the given level.
func (c *Collector) Count(level Level) int {
	n := 0
	for _, e := range c.entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Merge appends other's entries without mirroring them again.
func (c *Collector) Merge(other *Collector) {
	if other == nil || other == c {
		return
	}
	c.entries = append(c.entries, other.entries...)
}

func (c *Collector) mirror(e Entry) {
	attrs := []logging.Attr{
		logging.String(logging.FieldPass, e.Pass),
		logging.String(logging.FieldDiagLevel, string(e.Level)),
	}
	c.logger.LogAttrs(context.Background(), slogLevel(e.Level), e.Message, attrs...)
}

func slogLevel(level Level) slog.Level {
	switch level {
	case LevelError:
		return slog.LevelError
	case LevelWarning:
		return slog.LevelWarn
	case LevelMerge:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
