package passes

import (
	"slices"
	"testing"

	"captionfix/internal/diagnostics"
	"captionfix/internal/vtt"
)

func TestDurationSplitAtMidpoint(t *testing.T) {
	doc := mustParse(t, "WEBVTT\n\n00:00:01.000 --> 00:00:09.001 align:start\nFirst line\nSecond line\n00:00:10.000 --> 00:00:11.000\nShort")
	diag := diagnostics.New(nil)

	out := DurationSplit(DefaultRules()).Apply(doc, diag)

	cues := out.Cues()
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(cues))
	}
	first, second := cues[0], cues[1]
	if first.Start != 1000 || first.End != 5000 || second.Start != 5000 || second.End != 9001 {
		t.Fatalf("unexpected split intervals %s / %s", first.Timing(), second.Timing())
	}
	if !slices.Equal(first.Lines, []string{"First line", "Second line"}) {
		t.Fatalf("first half lost payload: %q", first.Lines)
	}
	if len(second.Lines) != 0 {
		t.Fatalf("second half should carry no payload, got %q", second.Lines)
	}
	if first.Settings != "align:start" || second.Settings != "align:start" {
		t.Fatalf("settings not preserved: %q %q", first.Settings, second.Settings)
	}
	if out.Elements[0].Literal != "WEBVTT" {
		t.Fatalf("literal moved: %+v", out.Elements[0])
	}
	if n := len(entriesFor(diag, NameDurationSplit, diagnostics.LevelWarning)); n != 1 {
		t.Fatalf("expected 1 warning, got %d", n)
	}
	if n := len(entriesFor(diag, NameDurationSplit, diagnostics.LevelInfo)); n != 1 {
		t.Fatalf("expected 1 info entry naming the halves, got %d", n)
	}
}

func TestDurationSplitRendersPayloadUnderFirstHalf(t *testing.T) {
	doc := mustParse(t, "00:00:00.000 --> 00:00:10.000\nLong line")
	out := DurationSplit(DefaultRules()).Apply(doc, diagnostics.New(nil))

	want := "00:00:00.000 --> 00:00:05.000\nLong line\n00:00:05.000 --> 00:00:10.000"
	if got := vtt.Render(out, vtt.RenderOptions{}); got != want {
		t.Fatalf("render = %q, want %q", got, want)
	}
}

func TestDurationSplitLeavesBoundaryCue(t *testing.T) {
	doc := mustParse(t, "00:00:00.000 --> 00:00:07.000\nExactly seven seconds")
	diag := diagnostics.New(nil)
	out := DurationSplit(DefaultRules()).Apply(doc, diag)
	if out.CueCount() != 1 || diag.Len() != 0 {
		t.Fatalf("7000 ms cue should not split: %d cues, %d entries", out.CueCount(), diag.Len())
	}
}

func TestDurationSplitRedistributes(t *testing.T) {
	rules := DefaultRules()
	rules.RedistributeSplits = true

	tests := []struct {
		name   string
		lines  []string
		first  []string
		second []string
	}{
		{"three lines", []string{"a", "b", "c"}, []string{"a", "b"}, []string{"c"}},
		{"two lines", []string{"a", "b"}, []string{"a"}, []string{"b"}},
		{"one line", []string{"one two three four five"}, []string{"one two three"}, []string{"four five"}},
		{"one word", []string{"hello"}, []string{"hello"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := vtt.Document{Elements: []vtt.Element{vtt.CueElement(vtt.Cue{Start: 0, End: 10000, Lines: tt.lines})}}
			out := DurationSplit(rules).Apply(doc, diagnostics.New(nil))
			cues := out.Cues()
			if len(cues) != 2 {
				t.Fatalf("expected 2 cues, got %d", len(cues))
			}
			if !slices.Equal(cues[0].Lines, tt.first) || !slices.Equal(cues[1].Lines, tt.second) {
				t.Fatalf("got %q / %q, want %q / %q", cues[0].Lines, cues[1].Lines, tt.first, tt.second)
			}
		})
	}
}

func TestLineCountSplitRepeatsTiming(t *testing.T) {
	doc := mustParse(t, "00:00:01.000 --> 00:00:05.000\nl1\nl2\nl3\nl4\nl5")
	diag := diagnostics.New(nil)

	out := LineCountSplit(DefaultRules()).Apply(doc, diag)

	text := vtt.Render(out, vtt.RenderOptions{})
	want := "00:00:01.000 --> 00:00:05.000\nl1\nl2\n00:00:01.000 --> 00:00:05.000\nl3\nl4\nl5"
	if text != want {
		t.Fatalf("render = %q, want %q", text, want)
	}
	if n := len(entriesFor(diag, NameLineCountSplit, diagnostics.LevelWarning)); n != 1 {
		t.Fatalf("expected 1 warning, got %d", n)
	}
}

func TestLineCountSplitRedistributesTiming(t *testing.T) {
	rules := DefaultRules()
	rules.RedistributeSplits = true
	doc := mustParse(t, "00:00:01.000 --> 00:00:06.000\nl1\nl2\nl3\nl4\nl5")

	cues := LineCountSplit(rules).Apply(doc, diagnostics.New(nil)).Cues()

	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].Start != 1000 || cues[0].End != 3000 || cues[1].Start != 3000 || cues[1].End != 6000 {
		t.Fatalf("unexpected intervals %s / %s", cues[0].Timing(), cues[1].Timing())
	}
}

func TestLineCountSplitIgnoresShortCues(t *testing.T) {
	doc := mustParse(t, "00:00:01.000 --> 00:00:05.000\nl1\nl2\nl3")
	diag := diagnostics.New(nil)
	if out := LineCountSplit(DefaultRules()).Apply(doc, diag); out.CueCount() != 1 || diag.Len() != 0 {
		t.Fatalf("three-line cue should not split")
	}
}
