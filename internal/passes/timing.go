package passes

import (
	"captionfix/internal/diagnostics"
	"captionfix/internal/vtt"
)

// MinGapCheck warns about consecutive cues separated by less than
// rules.MinGap. The document is returned unchanged.
func MinGapCheck(rules Rules) Pass {
	return Func{PassName: NameMinGapCheck, Fn: func(doc vtt.Document, diag *diagnostics.Collector) vtt.Document {
		cues := doc.Cues()
		for i := 0; i+1 < len(cues); i++ {
			cur, next := cues[i], cues[i+1]
			if next.Start-cur.End < rules.MinGap {
				diag.Warnf(NameMinGapCheck, "Gap between captions is less than %d ms: %s -> %s",
					rules.MinGap, vtt.FormatTimestamp(cur.End), vtt.FormatTimestamp(next.Start))
			}
		}
		return doc.Clone()
	}}
}

// TimingAdjust extends cues shorter than rules.MinDuration to that length.
// When the extension would run past the next cue's start, the end is clamped
// to rules.MinGap before it, which may still leave the cue short.
func TimingAdjust(rules Rules) Pass {
	return Func{PassName: NameTimingAdjust, Fn: func(doc vtt.Document, diag *diagnostics.Collector) vtt.Document {
		cues := doc.Cues()
		for i := range cues {
			if cues[i].Duration() >= rules.MinDuration {
				continue
			}
			end := cues[i].Start + rules.MinDuration
			if i+1 < len(cues) && end > cues[i+1].Start {
				end = cues[i+1].Start - rules.MinGap
			}
			cues[i].End = end
			diag.Infof(NameTimingAdjust, "Adjusted timing for short caption: %s", cues[i].Timing())
		}
		return doc.ReplaceCues(cues)
	}}
}

// FinalValidate reports every cue whose start is not before its end.
func FinalValidate() Pass {
	return Func{PassName: NameFinalValidate, Fn: func(doc vtt.Document, diag *diagnostics.Collector) vtt.Document {
		for i, cue := range doc.Cues() {
			if cue.Start >= cue.End {
				diag.Errorf(NameFinalValidate, "Invalid timestamp: start time is not before end time in caption %d (%s)", i+1, cue.Timing())
			}
		}
		return doc.Clone()
	}}
}

// OutputFormat renders doc with a blank line after every timing line and
// checks that the result still contains captions.
func OutputFormat(doc vtt.Document, diag *diagnostics.Collector) string {
	text := vtt.Render(doc, vtt.RenderOptions{BlankAfterTiming: true})
	count := vtt.CountTimingLines(text)
	diag.Infof(NameOutputFormat, "Total number of captions: %d", count)
	if count == 0 {
		diag.Errorf(NameOutputFormat, "No captions found in the processed content")
		return text
	}
	diag.Infof(NameOutputFormat, "Final validation passed")
	return text
}
