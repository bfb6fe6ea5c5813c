package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"captionfix/internal/diagnostics"
	"captionfix/internal/fileutil"
	"captionfix/internal/processor"
	"captionfix/internal/services"
)

// Format selects the report encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Summary counts diagnostics entries by level.
type Summary struct {
	Info     int `json:"info" yaml:"info"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Errors   int `json:"errors" yaml:"errors"`
	Merges   int `json:"merges" yaml:"merges"`
}

// Report is the exported view of a processing run. The caption text itself
// is not part of it.
type Report struct {
	RunID      string              `json:"run_id" yaml:"run_id"`
	Mode       string              `json:"mode" yaml:"mode"`
	Source     string              `json:"source,omitempty" yaml:"source,omitempty"`
	Output     string              `json:"output,omitempty" yaml:"output,omitempty"`
	Cues       int                 `json:"cues" yaml:"cues"`
	Summary    Summary             `json:"summary" yaml:"summary"`
	Started    time.Time           `json:"started" yaml:"started"`
	Finished   time.Time           `json:"finished" yaml:"finished"`
	DurationMS int64               `json:"duration_ms" yaml:"duration_ms"`
	Entries    []diagnostics.Entry `json:"diagnostics" yaml:"diagnostics"`
}

// FromResult builds a report for result. output names where the caption text
// was written and may be empty.
func FromResult(result processor.Result, output string) Report {
	entries := result.Entries
	if entries == nil {
		entries = []diagnostics.Entry{}
	}
	return Report{
		RunID:  result.RunID,
		Mode:   string(result.Mode),
		Source: result.Source,
		Output: output,
		Cues:   result.Cues,
		Summary: Summary{
			Info:     result.Count(diagnostics.LevelInfo),
			Warnings: result.Count(diagnostics.LevelWarning),
			Errors:   result.Count(diagnostics.LevelError),
			Merges:   result.Count(diagnostics.LevelMerge),
		},
		Started:    result.Started,
		Finished:   result.Finished,
		DurationMS: result.Finished.Sub(result.Started).Milliseconds(),
		Entries:    entries,
	}
}

// FormatFromPath picks the encoding from the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", services.Wrap(services.ErrValidation, "report", "format",
			fmt.Sprintf("unsupported report extension %q (use .json, .yaml or .yml)", filepath.Ext(path)), nil)
	}
}

// Encode writes r to w in format.
func Encode(w io.Writer, format Format, r Report) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return services.Wrap(services.ErrIO, "report", "encode json", "", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return services.Wrap(services.ErrIO, "report", "encode yaml", "", err)
		}
		if err := enc.Close(); err != nil {
			return services.Wrap(services.ErrIO, "report", "encode yaml", "", err)
		}
		return nil
	default:
		return services.Wrap(services.ErrValidation, "report", "encode", "unknown format "+string(format), nil)
	}
}

// Write encodes r and stores it at path.
func Write(ctx context.Context, path string, r Report) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf strings.Builder
	if err := Encode(&buf, format, r); err != nil {
		return err
	}
	return fileutil.WriteFileLocked(ctx, path, []byte(buf.String()), 0o644)
}
