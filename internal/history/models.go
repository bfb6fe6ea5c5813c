package history

import (
	"time"

	"captionfix/internal/diagnostics"
)

// Status is the outcome of a recorded run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Run is one recorded processing call.
type Run struct {
	ID           string              `json:"id"`
	Mode         string              `json:"mode"`
	Source       string              `json:"source,omitempty"`
	Output       string              `json:"output,omitempty"`
	Status       Status              `json:"status"`
	Cues         int                 `json:"cues"`
	Warnings     int                 `json:"warnings"`
	Errors       int                 `json:"errors"`
	Merges       int                 `json:"merges"`
	ErrorMessage string              `json:"error_message,omitempty"`
	StartedAt    time.Time           `json:"started_at"`
	FinishedAt   time.Time           `json:"finished_at"`
	Entries      []diagnostics.Entry `json:"entries,omitempty"`
}

// Duration returns the wall time of the run.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.IsZero() || r.StartedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// CountEntries fills the per-level counters from Entries.
func (r *Run) CountEntries() {
	r.Warnings, r.Errors, r.Merges = 0, 0, 0
	for _, e := range r.Entries {
		switch e.Level {
		case diagnostics.LevelWarning:
			r.Warnings++
		case diagnostics.LevelError:
			r.Errors++
		case diagnostics.LevelMerge:
			r.Merges++
		}
	}
}
