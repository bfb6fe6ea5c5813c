package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"captionfix/internal/config"
	"captionfix/internal/diagnostics"
	"captionfix/internal/fileutil"
	"captionfix/internal/history"
	"captionfix/internal/logging"
	"captionfix/internal/processor"
	"captionfix/internal/report"
	"captionfix/internal/services"
)

type processOptions struct {
	output       string
	reportPath   string
	jsonOutput   bool
	showDiag     bool
	copy         bool
	redistribute bool
}

var modeSummaries = map[processor.Mode]string{
	processor.ModeFix:      "Repair line length, cue duration, short captions and timing",
	processor.ModeSpeakers: "Mark speaker changes with leading dashes",
	processor.ModeCover:    "Move captions that cover on-screen text (pass-through)",
	processor.ModeSync:     "Resynchronize caption timing (pass-through)",
	processor.ModeAll:      "Run fix, cover, speakers and sync in order",
}

func newProcessCommands(ctx *commandContext) []*cobra.Command {
	modes := processor.Modes()
	cmds := make([]*cobra.Command, 0, len(modes))
	for _, mode := range modes {
		cmds = append(cmds, newProcessCommand(ctx, mode))
	}
	return cmds
}

func newProcessCommand(ctx *commandContext, mode processor.Mode) *cobra.Command {
	var opts processOptions

	cmd := &cobra.Command{
		Use:   string(mode) + " <input|->",
		Short: modeSummaries[mode],
		Long: modeSummaries[mode] + ".\n\n" +
			"Reads WebVTT from the input file, or stdin when the input is \"-\". The result is\n" +
			"written to stdout unless -o is given or paths.output_dir is configured.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, ctx, mode, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the result to this file (\"-\" for stdout)")
	cmd.Flags().StringVar(&opts.reportPath, "report", "", "Export diagnostics to a .json, .yaml or .yml file")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the run result as JSON instead of caption text")
	cmd.Flags().BoolVar(&opts.showDiag, "diagnostics", false, "Print a diagnostics table to stderr")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "Copy the result to the system clipboard")
	cmd.Flags().BoolVar(&opts.redistribute, "redistribute", false, "Split cue timing proportionally instead of repeating it")
	return cmd
}

func runProcess(cmd *cobra.Command, ctx *commandContext, mode processor.Mode, input string, opts processOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	proc, logger, err := ctx.newProcessor(opts.redistribute)
	if err != nil {
		return err
	}
	logger = logging.NewComponentLogger(logger, "cli")

	if opts.reportPath != "" {
		if _, err := report.FormatFromPath(opts.reportPath); err != nil {
			return err
		}
	}
	outputPath, err := resolveOutputPath(cfg, input, string(mode), opts.output)
	if err != nil {
		return err
	}

	content, err := fileutil.ReadInput(input, cmd.InOrStdin())
	if err != nil {
		return err
	}

	runCtx := cmd.Context()
	if runCtx == nil {
		runCtx = context.Background()
	}
	runCtx = services.WithSource(runCtx, sourceName(input))

	result, runErr := proc.Run(runCtx, mode, content)
	if runErr == nil && outputPath != "" {
		if err := fileutil.WriteFileLocked(runCtx, outputPath, []byte(result.Text), 0o644); err != nil {
			runErr = err
		}
	}

	recordRun(runCtx, cfg, logger, result, mode, outputPath, runErr)

	if opts.reportPath != "" {
		if err := report.Write(runCtx, opts.reportPath, report.FromResult(result, outputPath)); err != nil && runErr == nil {
			runErr = err
		}
	}
	if opts.showDiag {
		writeDiagnosticsTable(cmd.ErrOrStderr(), result.Entries)
	}
	if runErr != nil {
		return runErr
	}

	if opts.copy {
		if err := copyToClipboard(result.Text); err != nil {
			logging.WarnWithContext(logger, "clipboard copy failed", "clipboard_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "result was not copied to the clipboard"),
			)
		}
	}

	switch {
	case opts.jsonOutput:
		if err := writeJSON(cmd, result); err != nil {
			return err
		}
	case outputPath == "":
		if _, err := io.WriteString(cmd.OutOrStdout(), result.Text); err != nil {
			return services.Wrap(services.ErrIO, "cli", "write stdout", "", err)
		}
	}

	fmt.Fprintln(cmd.ErrOrStderr(), summaryLine(result, outputPath, shouldColorize(cmd.ErrOrStderr())))
	return nil
}

// resolveOutputPath returns the file to write, or "" for stdout. An explicit
// -o wins; otherwise a configured output_dir receives a derived file name.
func resolveOutputPath(cfg *config.Config, input, mode, flag string) (string, error) {
	flag = strings.TrimSpace(flag)
	switch {
	case flag == fileutil.StdioPath:
		return "", nil
	case flag != "":
		return config.ExpandPath(flag)
	case cfg != nil && cfg.Paths.OutputDir != "" && input != fileutil.StdioPath:
		return fileutil.DerivedOutputPath(input, mode, cfg.Paths.OutputDir)
	default:
		return "", nil
	}
}

func sourceName(input string) string {
	if input == fileutil.StdioPath {
		return "stdin"
	}
	return input
}

func recordRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, result processor.Result, mode processor.Mode, output string, runErr error) {
	if cfg == nil || !cfg.History.Enabled || result.RunID == "" {
		return
	}
	run := history.Run{
		ID:         result.RunID,
		Mode:       string(mode),
		Source:     result.Source,
		Output:     output,
		Status:     history.StatusSucceeded,
		Cues:       result.Cues,
		StartedAt:  result.Started,
		FinishedAt: result.Finished,
		Entries:    result.Entries,
	}
	if runErr != nil {
		run.Status = history.StatusFailed
		run.ErrorMessage = runErr.Error()
	}
	run.CountEntries()

	store, err := history.Open(cfg)
	if err == nil {
		err = store.Record(context.WithoutCancel(ctx), run)
		_ = store.Close()
	}
	if err != nil {
		logging.WarnWithContext(logger, "run history not recorded", "history_record_failed",
			logging.String(logging.FieldRunID, run.ID),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check paths.history_db or disable history.enabled"),
			logging.String(logging.FieldImpact, "run will not appear in history list"),
		)
	}
}

func writeDiagnosticsTable(w io.Writer, entries []diagnostics.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No diagnostics.")
		return
	}
	colorize := shouldColorize(w)
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), levelLabel(e.Level, colorize), e.Pass, e.Message})
	}
	fmt.Fprintln(w, renderTable([]tableColumn{
		{Header: "#", Align: text.AlignRight},
		{Header: "Level"},
		{Header: "Pass"},
		{Header: "Message", MaxWidth: 72},
	}, rows))
}

func summaryLine(result processor.Result, output string, colorize bool) string {
	kind := statusOK
	switch {
	case result.Count(diagnostics.LevelError) > 0:
		kind = statusError
	case result.Count(diagnostics.LevelWarning) > 0:
		kind = statusWarn
	}
	msg := fmt.Sprintf("%d captions, %d warnings, %d errors, %d merges",
		result.Cues,
		result.Count(diagnostics.LevelWarning),
		result.Count(diagnostics.LevelError),
		result.Count(diagnostics.LevelMerge),
	)
	if output != "" {
		msg += " -> " + output
	}
	return renderStatusLine(string(result.Mode), kind, msg, colorize)
}
