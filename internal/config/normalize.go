package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRules()
	c.normalizeSpeaker()
	c.normalizeHistory()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv(envHistoryDB); ok && strings.TrimSpace(value) != "" {
		c.Paths.HistoryDB = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.HistoryDB) == "" {
		c.Paths.HistoryDB = defaultHistoryDB
	}

	var err error
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.HistoryDB, err = expandPath(c.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

// normalizeRules restores defaults for unset (zero) thresholds. Negative values
// are left for Validate to reject.
func (c *Config) normalizeRules() {
	defaults := Default().Rules
	fill := func(v *int, def int) {
		if *v == 0 {
			*v = def
		}
	}
	fill(&c.Rules.MaxLineLength, defaults.MaxLineLength)
	fill(&c.Rules.MaxLines, defaults.MaxLines)
	fill(&c.Rules.MaxDurationMS, defaults.MaxDurationMS)
	fill(&c.Rules.MinDurationMS, defaults.MinDurationMS)
	fill(&c.Rules.ShortCaptionMS, defaults.ShortCaptionMS)
}

func (c *Config) normalizeSpeaker() {
	c.Speaker.Rule = strings.ToLower(strings.TrimSpace(c.Speaker.Rule))
	if c.Speaker.Rule == "" {
		c.Speaker.Rule = defaultSpeakerRule
	}
}

func (c *Config) normalizeHistory() {
	if c.History.ListLimit <= 0 {
		c.History.ListLimit = defaultHistoryListLimit
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv(envLogLevel); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
