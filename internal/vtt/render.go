package vtt

import "strings"

// RenderOptions controls document rendering.
type RenderOptions struct {
	// BlankAfterTiming writes an empty line directly after every timing line.
	BlankAfterTiming bool
}

// Render joins the document's lines with newlines.
func Render(doc Document, opts RenderOptions) string {
	lines := make([]string, 0, len(doc.Elements)*2)
	for _, el := range doc.Elements {
		if !el.IsCue() {
			lines = append(lines, el.Literal)
			continue
		}
		timing := el.Cue.Timing()
		if opts.BlankAfterTiming {
			timing += "\n"
		}
		lines = append(lines, timing)
		lines = append(lines, el.Cue.Lines...)
	}
	return strings.Join(lines, "\n")
}

// CountTimingLines counts cue timing lines in rendered text.
func CountTimingLines(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if IsTimingLine(line) {
			count++
		}
	}
	return count
}
