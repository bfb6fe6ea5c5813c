// Package logging assembles structured slog loggers and formatting helpers used
// across captionfix.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so processor code can tag log
// lines with run IDs, modes, and source paths. Console output is written to
// stderr so processed subtitles can be piped from stdout. The package also
// provides a no-op logger for tests and wiring code that cannot fail, and
// prunes dated log files past their retention window.
package logging
