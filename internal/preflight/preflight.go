package preflight

import (
	"context"
	"path/filepath"

	"captionfix/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// Failed counts results that did not pass.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}

// RunAll executes all applicable preflight checks for the given config.
// History checks only run when history is enabled, the output directory only
// when one is configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("Log directory", cfg.Paths.LogDir)}

	if cfg.History.Enabled {
		results = append(results,
			CheckDirectoryAccess("History directory", filepath.Dir(cfg.Paths.HistoryDB)),
			CheckHistory(ctx, cfg.Paths.HistoryDB),
		)
	}

	if cfg.Paths.OutputDir != "" {
		results = append(results, CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir))
	}

	results = append(results, CheckClipboard())
	return results
}
