package passes

import (
	"captionfix/internal/diagnostics"
	"captionfix/internal/vtt"
)

// Pass transforms a document. Implementations must not modify the input
// document; they return a new one and report anomalies to diag.
type Pass interface {
	Name() string
	Apply(doc vtt.Document, diag *diagnostics.Collector) vtt.Document
}

// Func adapts a function to the Pass interface.
type Func struct {
	PassName string
	Fn       func(vtt.Document, *diagnostics.Collector) vtt.Document
}

func (f Func) Name() string { return f.PassName }

func (f Func) Apply(doc vtt.Document, diag *diagnostics.Collector) vtt.Document {
	return f.Fn(doc, diag)
}

// Pass names as they appear in diagnostics.
const (
	NameEntityReplace     = "entity-replace"
	NameLineWrap          = "line-wrap"
	NameSpaceNormalize    = "space-normalize"
	NameDurationSplit     = "duration-split"
	NameLineCountSplit    = "line-count-split"
	NameShortCaptionMerge = "short-caption-merge"
	NameMinGapCheck       = "min-gap"
	NameTimingAdjust      = "timing-adjust"
	NameFinalValidate     = "final-validate"
	NameOutputFormat      = "output-format"
	NameSpeakerDash       = "speaker-dash"
)

// Pipeline is an ordered list of passes folded over a document.
type Pipeline []Pass

// Run applies each pass in order, feeding every pass the previous result.
// Each pass is bracketed by info entries naming it.
func (p Pipeline) Run(doc vtt.Document, diag *diagnostics.Collector) vtt.Document {
	for _, pass := range p {
		diag.Infof(pass.Name(), "Starting %s", pass.Name())
		doc = pass.Apply(doc, diag)
		diag.Infof(pass.Name(), "%s completed", pass.Name())
	}
	return doc
}

// Names lists the pass names in order.
func (p Pipeline) Names() []string {
	names := make([]string, 0, len(p))
	for _, pass := range p {
		names = append(names, pass.Name())
	}
	return names
}

// FixPipeline returns the structural passes of the fix operation in their
// fixed order. Rendering is done separately by OutputFormat.
func FixPipeline(rules Rules) Pipeline {
	return Pipeline{
		EntityReplace(),
		LineWrap(rules),
		SpaceNormalize(),
		DurationSplit(rules),
		LineCountSplit(rules),
		ShortCaptionMerge(rules),
		MinGapCheck(rules),
		TimingAdjust(rules),
		FinalValidate(),
	}
}
