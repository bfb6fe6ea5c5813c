package passes

import (
	"testing"

	"captionfix/internal/diagnostics"
	"captionfix/internal/vtt"
)

func mustParse(t *testing.T, text string) vtt.Document {
	t.Helper()
	doc, err := vtt.Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func cueAt(t *testing.T, doc vtt.Document, index int) vtt.Cue {
	t.Helper()
	cues := doc.Cues()
	if index >= len(cues) {
		t.Fatalf("expected at least %d cues, got %d", index+1, len(cues))
	}
	return cues[index]
}

func entriesFor(diag *diagnostics.Collector, pass string, level diagnostics.Level) []diagnostics.Entry {
	var out []diagnostics.Entry
	for _, e := range diag.Entries() {
		if e.Pass == pass && e.Level == level {
			out = append(out, e)
		}
	}
	return out
}
