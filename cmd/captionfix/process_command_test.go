package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"captionfix/internal/history"
	"captionfix/internal/services"
	"captionfix/internal/testsupport"
)

const shortCaption = "WEBVTT\n\n00:00:01.000 --> 00:00:01.500\nHello\n"

func TestFixWritesStdout(t *testing.T) {
	env := setupCLITestEnv(t)
	input := filepath.Join(env.baseDir, "talk.vtt")
	testsupport.WriteFile(t, input, shortCaption)

	stdout, stderr, err := runCLI(t, []string{"fix", input}, env.configPath, nil)
	if err != nil {
		t.Fatalf("fix: %v (stderr=%s)", err, stderr)
	}
	want := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n\nHello"
	if stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
	requireContains(t, stderr, "fix:")
	requireContains(t, stderr, "1 captions")
}

func TestFixReadsStdinAndPrintsJSON(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, []string{"fix", "-", "--json"}, env.configPath, strings.NewReader(shortCaption))
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	var decoded struct {
		RunID  string `json:"run_id"`
		Mode   string `json:"mode"`
		Source string `json:"source"`
		Text   string `json:"text"`
		Cues   int    `json:"cues"`
	}
	if err := json.Unmarshal([]byte(stdout), &decoded); err != nil {
		t.Fatalf("decode json: %v (%q)", err, stdout)
	}
	if decoded.Mode != "fix" || decoded.Source != "stdin" || decoded.Cues != 1 || decoded.RunID == "" {
		t.Fatalf("unexpected result %+v", decoded)
	}
	if !strings.Contains(decoded.Text, "00:00:01.000 --> 00:00:02.000") {
		t.Fatalf("unexpected text %q", decoded.Text)
	}
}

func TestFixWritesOutputReportAndHistory(t *testing.T) {
	env := setupCLITestEnv(t)
	input := filepath.Join(env.baseDir, "talk.vtt")
	output := filepath.Join(env.baseDir, "out", "talk.vtt")
	reportPath := filepath.Join(env.baseDir, "report.yaml")
	testsupport.WriteFile(t, input, testsupport.SampleCaptions)

	stdout, stderr, err := runCLI(t, []string{"fix", input, "-o", output, "--report", reportPath, "--diagnostics"}, env.configPath, nil)
	if err != nil {
		t.Fatalf("fix: %v (stderr=%s)", err, stderr)
	}
	if stdout != "" {
		t.Fatalf("expected empty stdout when -o is set, got %q", stdout)
	}
	if got := testsupport.ReadFile(t, output); !strings.HasPrefix(got, "WEBVTT") {
		t.Fatalf("unexpected output file %q", got)
	}
	requireContains(t, stderr, "Pass")
	requireContains(t, stderr, "line-wrap")

	rep := testsupport.ReadFile(t, reportPath)
	requireContains(t, rep, "run_id:")
	requireContains(t, rep, "output: "+output)

	store := testsupport.MustOpenHistory(t, env.cfg)
	runs, err := store.List(t.Context(), 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected one recorded run, got %d", len(runs))
	}
	if runs[0].Status != history.StatusSucceeded || runs[0].Output != output || runs[0].Source != input {
		t.Fatalf("unexpected run %+v", runs[0])
	}
}

func TestFixUsesConfiguredOutputDir(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithOutputDir("processed"))
	input := filepath.Join(env.baseDir, "talk.vtt")
	testsupport.WriteFile(t, input, shortCaption)

	stdout, _, err := runCLI(t, []string{"all", input}, env.configPath, nil)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if stdout != "" {
		t.Fatalf("expected empty stdout, got %q", stdout)
	}
	derived := filepath.Join(env.cfg.Paths.OutputDir, "talk.processed.vtt")
	if _, err := os.Stat(derived); err != nil {
		t.Fatalf("expected derived output %s: %v", derived, err)
	}
}

func TestFixMalformedInputExitsWithFormatCode(t *testing.T) {
	env := setupCLITestEnv(t)
	input := filepath.Join(env.baseDir, "bad.vtt")
	output := filepath.Join(env.baseDir, "bad.out.vtt")
	testsupport.WriteFile(t, input, "00:00:aa.000 --> 00:00:02.000\nHi\n")

	stdout, _, err := runCLI(t, []string{"fix", input, "-o", output}, env.configPath, nil)
	if !errors.Is(err, services.ErrFormat) {
		t.Fatalf("expected format error, got %v", err)
	}
	if services.ExitCode(err) != services.ExitFormat {
		t.Fatalf("exit code = %d", services.ExitCode(err))
	}
	if stdout != "" {
		t.Fatalf("expected no output, got %q", stdout)
	}
	if _, err := os.Stat(output); !os.IsNotExist(err) {
		t.Fatalf("output file should not exist: %v", err)
	}

	store := testsupport.MustOpenHistory(t, env.cfg)
	runs, err := store.List(t.Context(), 0)
	if err != nil || len(runs) != 1 {
		t.Fatalf("List = %v, %v", runs, err)
	}
	if runs[0].Status != history.StatusFailed || runs[0].ErrorMessage == "" {
		t.Fatalf("expected failed run, got %+v", runs[0])
	}
}

func TestProcessRejectsUnknownReportExtension(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"fix", "-", "--report", "r.txt"}, env.configPath, strings.NewReader(shortCaption))
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProcessMissingInput(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"speakers", filepath.Join(env.baseDir, "missing.vtt")}, env.configPath, nil)
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCopyFlagWritesClipboard(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithoutHistory())
	var copied string
	orig := clipboardWrite
	clipboardWrite = func(text string) error {
		copied = text
		return nil
	}
	t.Cleanup(func() { clipboardWrite = orig })

	stdout, _, err := runCLI(t, []string{"speakers", "-", "--copy"}, env.configPath,
		strings.NewReader("00:00:01.000 --> 00:00:02.000\nWhere are you\ngoing?"))
	if err != nil {
		t.Fatalf("speakers: %v", err)
	}
	if copied != stdout || !strings.Contains(copied, "- Where are you") {
		t.Fatalf("copied %q, stdout %q", copied, stdout)
	}
}

func TestStubModesPassThrough(t *testing.T) {
	env := setupCLITestEnv(t)
	for _, mode := range []string{"cover", "sync"} {
		stdout, stderr, err := runCLI(t, []string{mode, "-"}, env.configPath, strings.NewReader(shortCaption))
		if err != nil {
			t.Fatalf("%s: %v", mode, err)
		}
		if stdout != shortCaption {
			t.Fatalf("%s changed the captions: %q", mode, stdout)
		}
		requireContains(t, stderr, "1 warnings")
	}
}

func TestResolveOutputPath(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithOutputDir("out"))
	tests := []struct {
		input string
		flag  string
		want  string
	}{
		{"talk.vtt", "-", ""},
		{"talk.vtt", "/tmp/x.vtt", "/tmp/x.vtt"},
		{"/data/talk.vtt", "", filepath.Join(cfg.Paths.OutputDir, "talk.fixed.vtt")},
		{"-", "", ""},
	}
	for _, tt := range tests {
		got, err := resolveOutputPath(cfg, tt.input, "fix", tt.flag)
		if err != nil || got != tt.want {
			t.Fatalf("resolveOutputPath(%q, %q) = %q, %v; want %q", tt.input, tt.flag, got, err, tt.want)
		}
	}
}

func TestRedistributeFlag(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithoutHistory())
	input := "00:00:00.000 --> 00:00:10.000\nfirst line\nsecond line"
	want := "00:00:05.000 --> 00:00:10.000\n\nsecond line"

	stdout, _, err := runCLI(t, []string{"fix", "-", "--redistribute"}, env.configPath, strings.NewReader(input))
	if err != nil {
		t.Fatalf("fix --redistribute: %v", err)
	}
	requireContains(t, stdout, want)

	stdout, _, err = runCLI(t, []string{"fix", "-"}, env.configPath, strings.NewReader(input))
	if err != nil {
		t.Fatalf("fix: %v", err)
	}
	if strings.Contains(stdout, want) {
		t.Fatalf("default mode should keep the payload on the first half: %q", stdout)
	}
}
