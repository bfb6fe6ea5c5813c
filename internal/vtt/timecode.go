package vtt

import (
	"fmt"
	"strconv"
	"strings"

	"captionfix/internal/services"
)

// Separator marks a cue timing line.
const Separator = "-->"

// FormatError reports a timestamp literal that does not match HH:MM:SS.mmm.
type FormatError struct {
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid timestamp %q: %s", e.Value, e.Reason)
}

// Unwrap lets callers classify the failure with errors.Is(err, services.ErrFormat).
func (e *FormatError) Unwrap() error {
	return services.ErrFormat
}

// ParseTimestamp converts "HH:MM:SS.mmm" into milliseconds. Anything after the
// first space is ignored so cue settings can trail the end timestamp. A
// leading "-" is accepted so every value FormatTimestamp writes reads back.
func ParseTimestamp(value string) (int64, error) {
	raw := value
	value = strings.TrimSpace(value)
	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		value = value[:idx]
	}
	negative := false
	if rest, ok := strings.CutPrefix(value, "-"); ok {
		negative = true
		value = rest
	}
	if value == "" {
		return 0, &FormatError{Value: raw, Reason: "empty timestamp"}
	}

	clock, fraction, ok := strings.Cut(value, ".")
	if !ok {
		return 0, &FormatError{Value: raw, Reason: "missing milliseconds"}
	}
	hms := strings.Split(clock, ":")
	if len(hms) != 3 {
		return 0, &FormatError{Value: raw, Reason: "expected HH:MM:SS.mmm"}
	}

	hours, err := parseField(hms[0], 2, false)
	if err != nil {
		return 0, &FormatError{Value: raw, Reason: "hours " + err.Error()}
	}
	minutes, err := parseField(hms[1], 2, true)
	if err != nil {
		return 0, &FormatError{Value: raw, Reason: "minutes " + err.Error()}
	}
	seconds, err := parseField(hms[2], 2, true)
	if err != nil {
		return 0, &FormatError{Value: raw, Reason: "seconds " + err.Error()}
	}
	millis, err := parseField(fraction, 3, true)
	if err != nil {
		return 0, &FormatError{Value: raw, Reason: "milliseconds " + err.Error()}
	}
	ms := ((hours*60+minutes)*60+seconds)*1000 + millis
	if negative {
		ms = -ms
	}
	return ms, nil
}

// parseField reads a run of ASCII digits. exact requires exactly width digits,
// otherwise width is the minimum.
func parseField(field string, width int, exact bool) (int64, error) {
	if len(field) < width || (exact && len(field) != width) {
		return 0, fmt.Errorf("must have %d digits", width)
	}
	for i := 0; i < len(field); i++ {
		if field[i] < '0' || field[i] > '9' {
			return 0, fmt.Errorf("%q is not numeric", field)
		}
	}
	n, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q out of range", field)
	}
	return n, nil
}

// FormatTimestamp renders milliseconds as HH:MM:SS.mmm. Hours wider than two
// digits are written in full.
func FormatTimestamp(ms int64) string {
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000
	seconds := (ms % 60_000) / 1000
	millis := ms % 1000
	return fmt.Sprintf("%s%02d:%02d:%02d.%03d", sign, hours, minutes, seconds, millis)
}

// ParseTiming splits a timing line into its start, end and trailing settings.
func ParseTiming(line string) (start, end int64, settings string, err error) {
	left, right, ok := strings.Cut(line, Separator)
	if !ok {
		return 0, 0, "", &FormatError{Value: line, Reason: "missing " + Separator}
	}
	start, err = ParseTimestamp(left)
	if err != nil {
		return 0, 0, "", err
	}
	right = strings.TrimSpace(right)
	end, err = ParseTimestamp(right)
	if err != nil {
		return 0, 0, "", err
	}
	if idx := strings.IndexAny(right, " \t"); idx >= 0 {
		settings = strings.TrimSpace(right[idx:])
	}
	return start, end, settings, nil
}

// FormatTiming renders a timing line in canonical form.
func FormatTiming(start, end int64, settings string) string {
	line := FormatTimestamp(start) + " " + Separator + " " + FormatTimestamp(end)
	if settings != "" {
		line += " " + settings
	}
	return line
}

// IsTimingLine reports whether line starts a cue.
func IsTimingLine(line string) bool {
	return strings.Contains(line, Separator)
}
