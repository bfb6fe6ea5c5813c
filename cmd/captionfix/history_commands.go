package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"captionfix/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded processing runs",
	}
	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("limit") {
				limit = cfg.History.ListLimit
			}
			return ctx.withHistory(func(store *history.Store) error {
				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					if runs == nil {
						runs = []history.Run{}
					}
					return writeJSON(cmd, runs)
				}
				out := cmd.OutOrStdout()
				if len(runs) == 0 {
					fmt.Fprintln(out, "No runs recorded.")
					return nil
				}
				fmt.Fprintln(out, renderRunTable(runs))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum number of runs to show (0 for all; default history.list_limit)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run and its diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(store *history.Store) error {
				run, err := store.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, run)
				}
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				kind := statusOK
				if run.Status == history.StatusFailed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine("Run", kind, run.ID, colorize))
				fmt.Fprintln(out, renderStatusLine("Mode", statusInfo, run.Mode, colorize))
				fmt.Fprintln(out, renderStatusLine("Source", statusInfo, dashIfEmpty(run.Source), colorize))
				fmt.Fprintln(out, renderStatusLine("Output", statusInfo, dashIfEmpty(run.Output), colorize))
				fmt.Fprintln(out, renderStatusLine("Started", statusInfo, formatRunTime(run.StartedAt), colorize))
				fmt.Fprintln(out, renderStatusLine("Duration", statusInfo, run.Duration().Round(time.Millisecond).String(), colorize))
				fmt.Fprintln(out, renderStatusLine("Captions", statusInfo, fmt.Sprintf("%d", run.Cues), colorize))
				if run.ErrorMessage != "" {
					fmt.Fprintln(out, renderStatusLine("Error", statusError, run.ErrorMessage, colorize))
				}
				fmt.Fprintln(out)
				writeDiagnosticsTable(out, run.Entries)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run as JSON")
	return cmd
}

func renderRunTable(runs []history.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.ID),
			formatRunTime(run.StartedAt),
			run.Mode,
			string(run.Status),
			fmt.Sprintf("%d", run.Cues),
			fmt.Sprintf("%d", run.Warnings),
			fmt.Sprintf("%d", run.Errors),
			fmt.Sprintf("%d", run.Merges),
			dashIfEmpty(run.Source),
		})
	}
	return renderTable([]tableColumn{
		{Header: "ID"},
		{Header: "Started"},
		{Header: "Mode"},
		{Header: "Status"},
		{Header: "Cues", Align: text.AlignRight},
		{Header: "Warn", Align: text.AlignRight},
		{Header: "Err", Align: text.AlignRight},
		{Header: "Merge", Align: text.AlignRight},
		{Header: "Source", MaxWidth: 48},
	}, rows)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatRunTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func dashIfEmpty(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
