package passes

// Rules holds the thresholds used by the fix pipeline. Durations are in
// milliseconds and line lengths in characters.
type Rules struct {
	MaxLineLength int
	MaxLines      int
	MaxDuration   int64
	MinDuration   int64
	ShortCaption  int64
	MinGap        int64

	// RedistributeSplits enables the corrected split variants: DurationSplit
	// shares payload lines between both halves and LineCountSplit computes a
	// distinct midpoint instead of repeating the original timing.
	RedistributeSplits bool
}

// DefaultRules returns the standard caption quality thresholds.
func DefaultRules() Rules {
	return Rules{
		MaxLineLength: 32,
		MaxLines:      3,
		MaxDuration:   7000,
		MinDuration:   1000,
		ShortCaption:  1200,
		MinGap:        40,
	}
}

// SpeakerRule selects when SpeakerDash prefixes a line.
type SpeakerRule string

const (
	// SpeakerContinuation dashes a line when the previous payload line does
	// not end with a period.
	SpeakerContinuation SpeakerRule = "continuation"
	// SpeakerSentence dashes a line when the previous payload line ends with
	// a period.
	SpeakerSentence SpeakerRule = "sentence"
)

// SpeakerRules configures SpeakerDash.
type SpeakerRules struct {
	Rule SpeakerRule
	// TrimPrevious trims the previous payload line before the period check.
	// By default the raw line is compared, so trailing whitespace after a
	// period suppresses the match.
	TrimPrevious bool
	// SkipDashed leaves lines that already start with "-" unmarked.
	SkipDashed bool
	// SkipBlank passes blank lines through unmarked and ignores them when
	// picking the first and previous payload line.
	SkipBlank bool
}

// DefaultSpeakerRules returns the continuation rule with untrimmed comparison.
func DefaultSpeakerRules() SpeakerRules {
	return SpeakerRules{Rule: SpeakerContinuation}
}
