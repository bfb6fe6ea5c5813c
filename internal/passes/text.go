package passes

import (
	"strings"

	"captionfix/internal/diagnostics"
	"captionfix/internal/textutil"
	"captionfix/internal/vtt"
)

const escapedSpeakerMarker = "&gt;&gt;"

// EntityReplace rewrites the escaped speaker marker "&gt;&gt;" to a dash on
// every literal and payload line.
func EntityReplace() Pass {
	return Func{PassName: NameEntityReplace, Fn: func(doc vtt.Document, _ *diagnostics.Collector) vtt.Document {
		out := vtt.Document{Elements: make([]vtt.Element, 0, len(doc.Elements))}
		for _, el := range doc.Elements {
			if !el.IsCue() {
				out.Elements = append(out.Elements, vtt.LiteralElement(strings.ReplaceAll(el.Literal, escapedSpeakerMarker, "-")))
				continue
			}
			cue := el.Cue.Clone()
			for i, line := range cue.Lines {
				cue.Lines[i] = strings.ReplaceAll(line, escapedSpeakerMarker, "-")
			}
			out.Elements = append(out.Elements, vtt.CueElement(cue))
		}
		return out
	}}
}

// LineWrap normalizes leading speaker markers and greedily re-wraps payload
// words to rules.MaxLineLength characters, keeping at most rules.MaxLines
// lines per cue.
func LineWrap(rules Rules) Pass {
	return Func{PassName: NameLineWrap, Fn: func(doc vtt.Document, diag *diagnostics.Collector) vtt.Document {
		return doc.MapCues(func(cue vtt.Cue) []vtt.Cue {
			var wrapped []string
			for _, line := range cue.Lines {
				wrapped = append(wrapped, wrapWords(normalizeSpeakerMarker(line), rules.MaxLineLength)...)
			}
			if len(wrapped) > rules.MaxLines {
				diag.Warnf(NameLineWrap, "Caption split into %d lines, keeping %d: %s", len(wrapped), rules.MaxLines, cue.Timing())
				wrapped = wrapped[:rules.MaxLines]
			}
			cue.Lines = wrapped
			return []vtt.Cue{cue}
		})
	}}
}

// normalizeSpeakerMarker rewrites a leading dash cluster of at most two
// characters (hyphen or en dash) or a leading ">>" to "- ".
func normalizeSpeakerMarker(line string) string {
	if rest, ok := strings.CutPrefix(line, ">>"); ok {
		return "- " + strings.TrimLeft(rest, " \t")
	}
	runes := []rune(line)
	n := 0
	for n < len(runes) && n < 2 && (runes[n] == '-' || runes[n] == '\u2013') {
		n++
	}
	if n == 0 {
		return line
	}
	return "- " + strings.TrimLeft(string(runes[n:]), " \t")
}

// wrapWords packs words into lines while len(current + " " + word) stays
// within limit. Blank input yields no lines.
func wrapWords(line string, limit int) []string {
	var out []string
	current := ""
	for _, word := range strings.Fields(line) {
		if textutil.DisplayLength(current+" "+word) <= limit {
			if current != "" {
				current += " "
			}
			current += word
			continue
		}
		if current != "" {
			out = append(out, current)
		}
		current = word
	}
	if current != "" {
		out = append(out, current)
	}
	return out
}

// SpaceNormalize trims payload lines and collapses whitespace runs.
func SpaceNormalize() Pass {
	return Func{PassName: NameSpaceNormalize, Fn: func(doc vtt.Document, _ *diagnostics.Collector) vtt.Document {
		return doc.MapCues(func(cue vtt.Cue) []vtt.Cue {
			for i, line := range cue.Lines {
				cue.Lines[i] = textutil.CollapseSpaces(line)
			}
			return []vtt.Cue{cue}
		})
	}}
}
