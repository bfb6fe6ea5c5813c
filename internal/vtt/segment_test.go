package vtt

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"captionfix/internal/services"
)

func TestParseSeparatesLiteralsAndCues(t *testing.T) {
	raw := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nHello\nthere\n\n00:00:03.000 --> 00:00:04.000\nBye"

	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(doc.Elements) != 4 {
		t.Fatalf("expected 4 elements, got %d", len(doc.Elements))
	}
	if doc.Elements[0].Literal != "WEBVTT" || doc.Elements[1].Literal != "" {
		t.Fatalf("expected header literals, got %+v", doc.Elements[:2])
	}

	cues := doc.Cues()
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].Start != 1000 || cues[0].End != 2000 {
		t.Fatalf("unexpected first cue timing %+v", cues[0])
	}
	if want := []string{"Hello", "there", ""}; !reflect.DeepEqual(cues[0].Lines, want) {
		t.Fatalf("first cue lines = %q, want %q", cues[0].Lines, want)
	}
	if want := []string{"Bye"}; !reflect.DeepEqual(cues[1].Lines, want) {
		t.Fatalf("second cue lines = %q, want %q", cues[1].Lines, want)
	}
}

func TestParseAdjacentCuesWithoutBlankLine(t *testing.T) {
	raw := "00:00:01.000 --> 00:00:02.000\nA\n00:00:02.000 --> 00:00:03.000\nB"
	doc, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	cues := doc.Cues()
	if len(cues) != 2 {
		t.Fatalf("expected 2 cues, got %d", len(cues))
	}
	if cues[0].Lines[0] != "A" || cues[1].Lines[0] != "B" {
		t.Fatalf("unexpected payloads %q %q", cues[0].Lines, cues[1].Lines)
	}
}

func TestParseCueWithoutPayload(t *testing.T) {
	doc, err := Parse("00:00:01.000 --> 00:00:02.000")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	cues := doc.Cues()
	if len(cues) != 1 || len(cues[0].Lines) != 0 {
		t.Fatalf("expected one empty cue, got %+v", cues)
	}
}

func TestParseFailsOnMalformedTiming(t *testing.T) {
	raw := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nok\n00:00:aa.000 --> 00:00:05.000\nbroken"
	doc, err := Parse(raw)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
	if len(doc.Elements) != 0 {
		t.Fatalf("expected no partial document, got %d elements", len(doc.Elements))
	}
}

func TestScanStopsWhenConsumerStops(t *testing.T) {
	raw := "WEBVTT\nKind: captions\n00:00:01.000 --> 00:00:02.000\nA"
	seen := 0
	for el, err := range Scan(raw) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen++
		if el.IsCue() {
			t.Fatal("consumer stopped before the cue")
		}
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Fatalf("expected 2 elements, got %d", seen)
	}
}

func TestParseNormalizesLineEndings(t *testing.T) {
	doc, err := Parse("\ufeffWEBVTT\r\n\r\n00:00:01.000 --> 00:00:02.000\r\nHi\r\n")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if doc.Elements[0].Literal != "WEBVTT" {
		t.Fatalf("expected BOM stripped header, got %q", doc.Elements[0].Literal)
	}
	cues := doc.Cues()
	if want := []string{"Hi", ""}; !reflect.DeepEqual(cues[0].Lines, want) {
		t.Fatalf("cue lines = %q, want %q", cues[0].Lines, want)
	}
}

func TestParseComposesOnlyCueLines(t *testing.T) {
	header := "NOTE cafe\u0301"
	doc, err := Parse(header + "\n\n00:00:01.000 --> 00:00:02.000\ncafe\u0301")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if doc.Elements[0].Literal != header {
		t.Fatalf("header literal changed: %q", doc.Elements[0].Literal)
	}
	if got := doc.Cues()[0].Lines[0]; got != "caf\u00e9" {
		t.Fatalf("cue line = %q, want composed form", got)
	}
	if got := Render(doc, RenderOptions{}); !strings.HasPrefix(got, header+"\n") {
		t.Fatalf("render changed header: %q", got)
	}
}
