package vtt

import (
	"iter"
	"strings"

	"captionfix/internal/textutil"
)

type scanState int

const (
	outsideCue scanState = iota
	insideCue
)

// Scan segments text into literal lines and cues. Lines before the first
// timing line are yielded verbatim as literals; once a timing line is seen
// every following line belongs to the open cue until the next timing line.
// Cue lines are put into NFC. A cue is yielded when it closes. A malformed timing line yields a *FormatError and
// ends the sequence.
func Scan(text string) iter.Seq2[Element, error] {
	return func(yield func(Element, error) bool) {
		lines := strings.Split(textutil.NormalizeInput(text), "\n")
		state := outsideCue
		var open Cue

		for _, line := range lines {
			if IsTimingLine(line) {
				start, end, settings, err := ParseTiming(line)
				if err != nil {
					yield(Element{}, err)
					return
				}
				if state == insideCue && !yield(CueElement(open), nil) {
					return
				}
				open = Cue{Start: start, End: end, Settings: settings}
				state = insideCue
				continue
			}

			switch state {
			case outsideCue:
				if !yield(LiteralElement(line), nil) {
					return
				}
			case insideCue:
				open.Lines = append(open.Lines, textutil.NormalizeText(line))
			}
		}

		if state == insideCue {
			yield(CueElement(open), nil)
		}
	}
}

// Parse collects Scan into a Document, failing on the first malformed timestamp.
func Parse(text string) (Document, error) {
	var doc Document
	for el, err := range Scan(text) {
		if err != nil {
			return Document{}, err
		}
		doc.Elements = append(doc.Elements, el)
	}
	return doc, nil
}
