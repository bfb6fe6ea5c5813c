package processor

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"captionfix/internal/config"
	"captionfix/internal/diagnostics"
	"captionfix/internal/logging"
	"captionfix/internal/passes"
	"captionfix/internal/services"
	"captionfix/internal/vtt"
)

const (
	stepFix      = "fix"
	stepSpeakers = "speakers"
)

// Result is the outcome of one processing call.
type Result struct {
	RunID    string              `json:"run_id" yaml:"run_id"`
	Mode     Mode                `json:"mode" yaml:"mode"`
	Source   string              `json:"source,omitempty" yaml:"source,omitempty"`
	Text     string              `json:"text" yaml:"-"`
	Cues     int                 `json:"cues" yaml:"cues"`
	Entries  []diagnostics.Entry `json:"diagnostics" yaml:"diagnostics"`
	Started  time.Time           `json:"started" yaml:"started"`
	Finished time.Time           `json:"finished" yaml:"finished"`
}

// Count returns the number of entries at level.
func (r Result) Count(level diagnostics.Level) int {
	n := 0
	for _, e := range r.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// Processor runs the caption operations. It holds only immutable rules and
// collaborators, so one instance may serve concurrent calls; every call gets
// its own diagnostics collector.
type Processor struct {
	logger  *slog.Logger
	rules   passes.Rules
	speaker passes.SpeakerRules
	coverer Coverer
	syncer  Syncer
	now     func() time.Time
	newID   func() string
}

// Option customizes a Processor.
type Option func(*Processor)

// WithRules overrides the fix pipeline thresholds.
func WithRules(rules passes.Rules) Option {
	return func(p *Processor) {
		p.rules = rules
	}
}

// WithSpeakerRules overrides the speaker dash behaviour.
func WithSpeakerRules(rules passes.SpeakerRules) Option {
	return func(p *Processor) {
		p.speaker = rules
	}
}

// WithCoverer injects a screen cover collaborator.
func WithCoverer(c Coverer) Option {
	return func(p *Processor) {
		if c != nil {
			p.coverer = c
		}
	}
}

// WithSyncer injects a resync collaborator.
func WithSyncer(s Syncer) Option {
	return func(p *Processor) {
		if s != nil {
			p.syncer = s
		}
	}
}

// WithClock overrides time and run id generation (used in tests).
func WithClock(now func() time.Time, newID func() string) Option {
	return func(p *Processor) {
		if now != nil {
			p.now = now
		}
		if newID != nil {
			p.newID = newID
		}
	}
}

// New constructs a processor. Rules come from cfg when provided, otherwise
// the defaults apply.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) *Processor {
	p := &Processor{
		logger:  logging.NewComponentLogger(logger, "processor"),
		rules:   passes.DefaultRules(),
		speaker: passes.DefaultSpeakerRules(),
		coverer: identityCoverer{},
		syncer:  identitySyncer{},
		now:     time.Now,
		newID:   uuid.NewString,
	}
	if cfg != nil {
		p.rules = RulesFromConfig(cfg)
		p.speaker = SpeakerRulesFromConfig(cfg)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RulesFromConfig maps the [rules] section onto pipeline rules.
func RulesFromConfig(cfg *config.Config) passes.Rules {
	r := cfg.Rules
	return passes.Rules{
		MaxLineLength:      r.MaxLineLength,
		MaxLines:           r.MaxLines,
		MaxDuration:        int64(r.MaxDurationMS),
		MinDuration:        int64(r.MinDurationMS),
		ShortCaption:       int64(r.ShortCaptionMS),
		MinGap:             int64(r.MinGapMS),
		RedistributeSplits: r.RedistributeSplits,
	}
}

// SpeakerRulesFromConfig maps the [speaker] section onto speaker rules.
func SpeakerRulesFromConfig(cfg *config.Config) passes.SpeakerRules {
	rule := passes.SpeakerContinuation
	if cfg.Speaker.Rule == config.SpeakerRuleSentence {
		rule = passes.SpeakerSentence
	}
	return passes.SpeakerRules{
		Rule:         rule,
		TrimPrevious: cfg.Speaker.TrimPrevious,
		SkipDashed:   cfg.Speaker.SkipDashed,
		SkipBlank:    cfg.Speaker.SkipBlank,
	}
}

// Rules returns the fix pipeline thresholds in use.
func (p *Processor) Rules() passes.Rules {
	return p.rules
}

// Fix runs the normalization pipeline and renders the result.
func (p *Processor) Fix(ctx context.Context, text string) (Result, error) {
	return p.Run(ctx, ModeFix, text)
}

// AddSpeakerDashes marks speaker turns.
func (p *Processor) AddSpeakerDashes(ctx context.Context, text string) (Result, error) {
	return p.Run(ctx, ModeSpeakers, text)
}

// CoverScreen delegates to the configured Coverer.
func (p *Processor) CoverScreen(ctx context.Context, text string) (Result, error) {
	return p.Run(ctx, ModeCover, text)
}

// SyncSubtitles delegates to the configured Syncer.
func (p *Processor) SyncSubtitles(ctx context.Context, text string) (Result, error) {
	return p.Run(ctx, ModeSync, text)
}

// All runs fix, cover, speaker dashes and sync in that order.
func (p *Processor) All(ctx context.Context, text string) (Result, error) {
	return p.Run(ctx, ModeAll, text)
}

type step func(ctx context.Context, text string, diag *diagnostics.Collector) (string, error)

// Run executes mode against text. On error no output text is returned, but
// the diagnostics gathered before the failure are.
func (p *Processor) Run(ctx context.Context, mode Mode, text string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	mode, err := ParseMode(string(mode))
	if err != nil {
		return Result{}, err
	}
	steps, err := p.steps(mode)
	if err != nil {
		return Result{}, err
	}

	result := Result{RunID: p.newID(), Mode: mode, Started: p.now()}
	result.Source, _ = services.SourceFromContext(ctx)
	ctx = services.WithRunID(ctx, result.RunID)
	ctx = services.WithMode(ctx, string(mode))
	logger := logging.WithContext(ctx, p.logger)

	logger.Debug("processing started", logging.Int("input_bytes", len(text)))

	// Each step gets its own collector; the run's entries are the merge of
	// all of them in step order.
	all := diagnostics.New(nil)
	for _, run := range steps {
		if err := ctx.Err(); err != nil {
			return p.fail(result, all, logger, services.Wrap(services.ErrIO, "processor", string(mode), "cancelled", err))
		}
		diag := diagnostics.New(logger)
		text, err = run(ctx, text, diag)
		all.Merge(diag)
		if err != nil {
			return p.fail(result, all, logger, err)
		}
	}

	result.Text = text
	result.Entries = all.Entries()
	result.Cues = vtt.CountTimingLines(text)
	result.Finished = p.now()
	logger.Info("processing completed",
		logging.Int("cues", result.Cues),
		logging.Int("warnings", all.Count(diagnostics.LevelWarning)),
		logging.Int("errors", all.Count(diagnostics.LevelError)),
		logging.Int("merges", all.Count(diagnostics.LevelMerge)),
		logging.Duration("elapsed", result.Finished.Sub(result.Started)),
	)
	return result, nil
}

func (p *Processor) fail(result Result, all *diagnostics.Collector, logger *slog.Logger, err error) (Result, error) {
	result.Entries = all.Entries()
	result.Finished = p.now()
	logger.Error("processing failed", logging.Error(err))
	return result, err
}

func (p *Processor) steps(mode Mode) ([]step, error) {
	switch mode {
	case ModeFix:
		return []step{p.fix}, nil
	case ModeSpeakers:
		return []step{p.speakers}, nil
	case ModeCover:
		return []step{p.coverer.CoverScreen}, nil
	case ModeSync:
		return []step{p.syncer.SyncSubtitles}, nil
	case ModeAll:
		return []step{p.fix, p.coverer.CoverScreen, p.speakers, p.syncer.SyncSubtitles}, nil
	default:
		return nil, services.Wrap(services.ErrValidation, "processor", "steps", "unsupported mode "+string(mode), nil)
	}
}

func (p *Processor) fix(_ context.Context, text string, diag *diagnostics.Collector) (string, error) {
	diag.Infof(stepFix, "Starting caption fixing")
	doc, err := vtt.Parse(strings.TrimSpace(text))
	if err != nil {
		diag.Errorf(stepFix, "Invalid timestamp format: %v", err)
		return "", services.Wrap(services.ErrFormat, "processor", "fix", "parse captions", err)
	}
	doc = passes.FixPipeline(p.rules).Run(doc, diag)
	out := passes.OutputFormat(doc, diag)
	diag.Infof(stepFix, "Caption fixing completed")
	return out, nil
}

func (p *Processor) speakers(_ context.Context, text string, diag *diagnostics.Collector) (string, error) {
	doc, err := vtt.Parse(text)
	if err != nil {
		diag.Errorf(stepSpeakers, "Invalid timestamp format: %v", err)
		return "", services.Wrap(services.ErrFormat, "processor", "speakers", "parse captions", err)
	}
	doc = passes.Pipeline{passes.SpeakerDash(p.speaker)}.Run(doc, diag)
	return vtt.Render(doc, vtt.RenderOptions{}), nil
}
