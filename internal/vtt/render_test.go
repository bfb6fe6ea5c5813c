package vtt

import "testing"

func TestRenderPlain(t *testing.T) {
	doc := Document{Elements: []Element{
		LiteralElement("WEBVTT"),
		LiteralElement(""),
		CueElement(Cue{Start: 1000, End: 2000, Lines: []string{"Hello"}}),
		CueElement(Cue{Start: 2500, End: 3000, Settings: "align:start", Lines: []string{"A", "B"}}),
	}}

	got := Render(doc, RenderOptions{})
	want := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nHello\n00:00:02.500 --> 00:00:03.000 align:start\nA\nB"
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
}

func TestRenderBlankAfterTiming(t *testing.T) {
	doc := Document{Elements: []Element{
		LiteralElement("WEBVTT"),
		CueElement(Cue{Start: 0, End: 1000, Lines: []string{"Hi"}}),
	}}
	got := Render(doc, RenderOptions{BlankAfterTiming: true})
	want := "WEBVTT\n00:00:00.000 --> 00:00:01.000\n\nHi"
	if got != want {
		t.Fatalf("Render = %q, want %q", got, want)
	}
	if n := CountTimingLines(got); n != 1 {
		t.Fatalf("CountTimingLines = %d, want 1", n)
	}
}

func TestRenderParseRoundTrip(t *testing.T) {
	raw := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nHello\n00:00:03.000 --> 00:00:04.000 line:0\nWorld"
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if got := Render(doc, RenderOptions{}); got != raw {
		t.Fatalf("round trip = %q, want %q", got, raw)
	}
}

func TestDocumentMapCuesKeepsLiterals(t *testing.T) {
	doc := Document{Elements: []Element{
		LiteralElement("WEBVTT"),
		CueElement(Cue{Start: 0, End: 1000, Lines: []string{"a"}}),
	}}
	out := doc.MapCues(func(c Cue) []Cue {
		second := c
		second.Start = c.End
		second.End = c.End + 1000
		return []Cue{c, second}
	})
	if len(out.Elements) != 3 || out.Elements[0].Literal != "WEBVTT" {
		t.Fatalf("unexpected elements %+v", out.Elements)
	}
	if out.CueCount() != 2 || doc.CueCount() != 1 {
		t.Fatalf("expected original untouched and two output cues")
	}
}

func TestDocumentCloneIsDeep(t *testing.T) {
	doc := Document{Elements: []Element{CueElement(Cue{Start: 0, End: 1000, Lines: []string{"a"}})}}
	clone := doc.Clone()
	clone.Elements[0].Cue.Lines[0] = "changed"
	if doc.Elements[0].Cue.Lines[0] != "a" {
		t.Fatal("clone shares line storage with original")
	}
}
