package config

const (
	defaultConfigPath       = "~/.config/captionfix/config.toml"
	defaultLogDir           = "~/.local/share/captionfix/logs"
	defaultHistoryDB        = "~/.local/share/captionfix/history.db"
	defaultLogRetentionDays = 30
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultHistoryListLimit = 20
	defaultMaxLineLength    = 32
	defaultMaxLines         = 3
	defaultMaxDurationMS    = 7000
	defaultMinDurationMS    = 1000
	defaultShortCaptionMS   = 1200
	defaultMinGapMS         = 40
	defaultSpeakerRule      = SpeakerRuleContinuation
	envLogLevel             = "CAPTIONFIX_LOG_LEVEL"
	envHistoryDB            = "CAPTIONFIX_HISTORY_DB"
)

// Speaker dash rules.
const (
	SpeakerRuleContinuation = "continuation"
	SpeakerRuleSentence     = "sentence"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Rules: Rules{
			MaxLineLength:  defaultMaxLineLength,
			MaxLines:       defaultMaxLines,
			MaxDurationMS:  defaultMaxDurationMS,
			MinDurationMS:  defaultMinDurationMS,
			ShortCaptionMS: defaultShortCaptionMS,
			MinGapMS:       defaultMinGapMS,
		},
		Speaker: Speaker{
			Rule: defaultSpeakerRule,
		},
		Paths: Paths{
			LogDir:    defaultLogDir,
			HistoryDB: defaultHistoryDB,
		},
		History: History{
			Enabled:   true,
			ListLimit: defaultHistoryListLimit,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
