package diagnostics

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestCollectorRecordsInOrder(t *testing.T) {
	c := New(nil)
	c.Infof("wrap", "started %d", 1)
	c.Warnf("duration", "long cue")
	c.Errorf("validate", "bad cue")
	c.Mergef("merge", "merged")

	entries := c.Entries()
	if len(entries) != 4 || c.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	want := []Level{LevelInfo, LevelWarning, LevelError, LevelMerge}
	for i, level := range want {
		if entries[i].Level != level {
			t.Fatalf("entry %d level = %s, want %s", i, entries[i].Level, level)
		}
	}
	if entries[0].Message != "started 1" || entries[0].Pass != "wrap" {
		t.Fatalf("unexpected first entry %+v", entries[0])
	}
	if c.Count(LevelError) != 1 || c.Count(LevelWarning) != 1 {
		t.Fatalf("unexpected counts")
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	c := New(nil)
	c.Infof("p", "one")
	entries := c.Entries()
	entries[0].Message = "changed"
	if c.Entries()[0].Message != "one" {
		t.Fatal("Entries exposed internal storage")
	}
}

func TestMergeAppendsWithoutSharing(t *testing.T) {
	a := New(nil)
	b := New(nil)
	a.Infof("fix", "a")
	b.Warnf("speaker", "b")
	a.Merge(b)
	a.Merge(a)
	a.Merge(nil)

	if a.Len() != 2 {
		t.Fatalf("expected 2 entries after merge, got %d", a.Len())
	}
	if b.Len() != 1 {
		t.Fatalf("merge mutated source collector")
	}
}

func TestCollectorMirrorsToLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := New(logger)
	c.Warnf("gap", "tight gap")

	out := buf.String()
	for _, fragment := range []string{"level=WARN", "tight gap", "pass=gap", "diag_level=warning"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in log output %q", fragment, out)
		}
	}
}
