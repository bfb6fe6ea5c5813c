package config

import (
	"errors"
	"fmt"
	"slices"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRules(); err != nil {
		return err
	}
	if err := c.validateSpeaker(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if c.History.Enabled && c.Paths.HistoryDB == "" {
		return errors.New("paths.history_db must be set when history.enabled is true")
	}
	return nil
}

func (c *Config) validateRules() error {
	if err := ensurePositiveMap(map[string]int{
		"rules.max_line_length":  c.Rules.MaxLineLength,
		"rules.max_lines":        c.Rules.MaxLines,
		"rules.max_duration_ms":  c.Rules.MaxDurationMS,
		"rules.min_duration_ms":  c.Rules.MinDurationMS,
		"rules.short_caption_ms": c.Rules.ShortCaptionMS,
	}); err != nil {
		return err
	}
	if c.Rules.MinGapMS < 0 {
		return errors.New("rules.min_gap_ms must be >= 0")
	}
	if c.Rules.MinDurationMS > c.Rules.MaxDurationMS {
		return errors.New("rules.min_duration_ms must not exceed rules.max_duration_ms")
	}
	return nil
}

func (c *Config) validateSpeaker() error {
	switch c.Speaker.Rule {
	case SpeakerRuleContinuation, SpeakerRuleSentence:
		return nil
	default:
		return fmt.Errorf("speaker.rule must be %q or %q, got %q", SpeakerRuleContinuation, SpeakerRuleSentence, c.Speaker.Rule)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}

// ensurePositiveMap reports the first non-positive value in key order so the
// error is stable across runs.
func ensurePositiveMap(values map[string]int) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if values[key] <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
