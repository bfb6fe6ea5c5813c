package passes

import (
	"captionfix/internal/diagnostics"
	"captionfix/internal/vtt"
)

// ShortCaptionMerge merges adjacent pairs of cues that are both shorter than
// rules.ShortCaption. A merge spans start(i) to end(i+1) with the lines
// concatenated and is kept only when it fits rules.MaxDuration and
// rules.MaxLines. The walk never backtracks: after a failed merge cue i+1
// stays eligible for pairing with cue i+2.
func ShortCaptionMerge(rules Rules) Pass {
	return Func{PassName: NameShortCaptionMerge, Fn: func(doc vtt.Document, diag *diagnostics.Collector) vtt.Document {
		els := doc.Elements
		out := vtt.Document{Elements: make([]vtt.Element, 0, len(els))}
		i := 0
		for i < len(els) {
			el := els[i]
			if !el.IsCue() || i+1 >= len(els) || !els[i+1].IsCue() {
				out.Elements = append(out.Elements, cloneElement(el))
				i++
				continue
			}
			cur, next := *el.Cue, *els[i+1].Cue
			if cur.Duration() >= rules.ShortCaption || next.Duration() >= rules.ShortCaption {
				out.Elements = append(out.Elements, vtt.CueElement(cur))
				i++
				continue
			}
			merged, ok := mergeCues(cur, next, rules)
			if !ok {
				diag.Errorf(NameShortCaptionMerge, "Unable to merge short caption %s with %s", cur.Timing(), next.Timing())
				out.Elements = append(out.Elements, vtt.CueElement(cur))
				i++
				continue
			}
			diag.Mergef(NameShortCaptionMerge, "Merged short caption with the next one: %s", merged.Timing())
			out.Elements = append(out.Elements, vtt.CueElement(merged))
			i += 2
		}
		return out
	}}
}

func mergeCues(a, b vtt.Cue, rules Rules) (vtt.Cue, bool) {
	merged := vtt.Cue{
		Start:    a.Start,
		End:      b.End,
		Settings: a.Settings,
		Lines:    append(append([]string(nil), a.Lines...), b.Lines...),
	}
	if merged.Duration() > rules.MaxDuration || len(merged.Lines) > rules.MaxLines {
		return vtt.Cue{}, false
	}
	return merged, true
}

func cloneElement(el vtt.Element) vtt.Element {
	if el.IsCue() {
		return vtt.CueElement(*el.Cue)
	}
	return el
}
