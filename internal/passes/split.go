package passes

import (
	"strings"

	"captionfix/internal/diagnostics"
	"captionfix/internal/vtt"
)

// DurationSplit splits every cue longer than rules.MaxDuration at its
// midpoint. By default the first half keeps the payload and the second half
// is emitted without payload lines; with RedistributeSplits the payload is
// shared between the halves.
func DurationSplit(rules Rules) Pass {
	return Func{PassName: NameDurationSplit, Fn: func(doc vtt.Document, diag *diagnostics.Collector) vtt.Document {
		return doc.MapCues(func(cue vtt.Cue) []vtt.Cue {
			duration := cue.Duration()
			if duration <= rules.MaxDuration {
				return []vtt.Cue{cue}
			}
			diag.Warnf(NameDurationSplit, "Caption longer than %d ms found: %s", rules.MaxDuration, cue.Timing())

			mid := cue.Start + duration/2
			first := vtt.Cue{Start: cue.Start, End: mid, Settings: cue.Settings, Lines: cue.Lines}
			second := vtt.Cue{Start: mid, End: cue.End, Settings: cue.Settings}
			if rules.RedistributeSplits {
				first.Lines, second.Lines = halveLines(cue.Lines)
			}
			diag.Infof(NameDurationSplit, "Caption split into two parts: %s and %s", first.Timing(), second.Timing())
			return []vtt.Cue{first, second}
		})
	}}
}

// halveLines gives the first ceil(n/2) lines to the first half. A single line
// is split at its middle word.
func halveLines(lines []string) ([]string, []string) {
	switch len(lines) {
	case 0:
		return nil, nil
	case 1:
		words := strings.Fields(lines[0])
		if len(words) < 2 {
			return []string{lines[0]}, nil
		}
		cut := (len(words) + 1) / 2
		return []string{strings.Join(words[:cut], " ")}, []string{strings.Join(words[cut:], " ")}
	}
	cut := (len(lines) + 1) / 2
	return append([]string(nil), lines[:cut]...), append([]string(nil), lines[cut:]...)
}

// LineCountSplit splits cues with more than rules.MaxLines payload lines in
// two, keeping floor(n/2) lines in the first cue. By default both cues repeat
// the original timing; with RedistributeSplits the interval is divided in
// proportion to the line counts.
func LineCountSplit(rules Rules) Pass {
	return Func{PassName: NameLineCountSplit, Fn: func(doc vtt.Document, diag *diagnostics.Collector) vtt.Document {
		return doc.MapCues(func(cue vtt.Cue) []vtt.Cue {
			n := len(cue.Lines)
			if n <= rules.MaxLines {
				return []vtt.Cue{cue}
			}
			diag.Warnf(NameLineCountSplit, "Caption has more than %d lines, splitting: %s", rules.MaxLines, cue.Timing())

			cut := n / 2
			first := cue
			first.Lines = append([]string(nil), cue.Lines[:cut]...)
			second := cue
			second.Lines = append([]string(nil), cue.Lines[cut:]...)
			if rules.RedistributeSplits {
				mid := cue.Start + cue.Duration()*int64(cut)/int64(n)
				first.End = mid
				second.Start = mid
			}
			return []vtt.Cue{first, second}
		})
	}}
}
