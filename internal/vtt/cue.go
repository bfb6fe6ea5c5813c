package vtt

// Cue is one caption unit: a timing interval plus its payload lines.
type Cue struct {
	Start    int64
	End      int64
	Settings string
	Lines    []string
}

// Duration returns End - Start in milliseconds.
func (c Cue) Duration() int64 {
	return c.End - c.Start
}

// Timing renders the cue's timing line.
func (c Cue) Timing() string {
	return FormatTiming(c.Start, c.End, c.Settings)
}

// Clone returns a copy that shares no line storage with c.
func (c Cue) Clone() Cue {
	c.Lines = append([]string(nil), c.Lines...)
	return c
}

// Element is either a literal line kept verbatim or a cue.
type Element struct {
	Literal string
	Cue     *Cue
}

// IsCue reports whether the element holds a cue.
func (e Element) IsCue() bool {
	return e.Cue != nil
}

// LiteralElement wraps a non-cue line.
func LiteralElement(line string) Element {
	return Element{Literal: line}
}

// CueElement wraps a copy of c.
func CueElement(c Cue) Element {
	clone := c.Clone()
	return Element{Cue: &clone}
}

// Document is the ordered element sequence of one subtitle file.
type Document struct {
	Elements []Element
}

// Cues returns copies of the cues in document order.
func (d Document) Cues() []Cue {
	cues := make([]Cue, 0, len(d.Elements))
	for _, el := range d.Elements {
		if el.IsCue() {
			cues = append(cues, el.Cue.Clone())
		}
	}
	return cues
}

// CueCount returns the number of cue elements.
func (d Document) CueCount() int {
	n := 0
	for _, el := range d.Elements {
		if el.IsCue() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{Elements: make([]Element, 0, len(d.Elements))}
	for _, el := range d.Elements {
		if el.IsCue() {
			out.Elements = append(out.Elements, CueElement(*el.Cue))
			continue
		}
		out.Elements = append(out.Elements, el)
	}
	return out
}

// MapCues builds a new document where each cue is replaced by the cues fn
// returns. Literal elements keep their positions. fn receives a private copy.
func (d Document) MapCues(fn func(Cue) []Cue) Document {
	out := Document{Elements: make([]Element, 0, len(d.Elements))}
	for _, el := range d.Elements {
		if !el.IsCue() {
			out.Elements = append(out.Elements, el)
			continue
		}
		for _, c := range fn(el.Cue.Clone()) {
			out.Elements = append(out.Elements, CueElement(c))
		}
	}
	return out
}

// ReplaceCues returns a document whose cue elements, in order, take the values
// of cues. It is used by passes that rewrite timing in place; len(cues) must
// equal d.CueCount().
func (d Document) ReplaceCues(cues []Cue) Document {
	out := Document{Elements: make([]Element, 0, len(d.Elements))}
	i := 0
	for _, el := range d.Elements {
		if el.IsCue() && i < len(cues) {
			out.Elements = append(out.Elements, CueElement(cues[i]))
			i++
			continue
		}
		out.Elements = append(out.Elements, el)
	}
	return out
}
