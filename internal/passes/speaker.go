package passes

import (
	"strings"

	"captionfix/internal/diagnostics"
	"captionfix/internal/vtt"
)

const speakerPrefix = "- "

// SpeakerDash marks speaker turns with a leading "- ". The first payload line
// of a cue is always marked; later lines are marked according to rules.Rule
// and the previous payload line. Output lines are trimmed. Blank lines and
// lines that already start with "-" are marked like any other line unless
// rules.SkipBlank or rules.SkipDashed is set.
func SpeakerDash(rules SpeakerRules) Pass {
	return Func{PassName: NameSpeakerDash, Fn: func(doc vtt.Document, diag *diagnostics.Collector) vtt.Document {
		marked := 0
		out := doc.MapCues(func(cue vtt.Cue) []vtt.Cue {
			lines := make([]string, len(cue.Lines))
			prev := -1
			for i, raw := range cue.Lines {
				line := strings.TrimSpace(raw)
				lines[i] = line
				if line == "" && rules.SkipBlank {
					continue
				}
				dash := prev < 0 || rules.dashAfter(cue.Lines[prev])
				prev = i
				if !dash || (rules.SkipDashed && strings.HasPrefix(line, "-")) {
					continue
				}
				lines[i] = speakerPrefix + line
				marked++
			}
			cue.Lines = lines
			return []vtt.Cue{cue}
		})
		diag.Infof(NameSpeakerDash, "Added %d speaker dashes", marked)
		return out
	}}
}

// dashAfter reports whether a line following prev starts a new speaker turn.
func (r SpeakerRules) dashAfter(prev string) bool {
	if r.TrimPrevious {
		prev = strings.TrimSpace(prev)
	}
	endsSentence := strings.HasSuffix(prev, ".")
	if r.Rule == SpeakerSentence {
		return endsSentence
	}
	return !endsSentence
}
