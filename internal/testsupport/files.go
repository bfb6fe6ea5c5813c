package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// SampleCaptions is a small caption file exercising the wrap, merge and
// timing passes.
const SampleCaptions = "WEBVTT\n\n" +
	"00:00:01.000 --> 00:00:01.500\n" +
	"&gt;&gt;Hello there, how are you doing on this fine morning?\n\n" +
	"00:00:03.000 --> 00:00:03.800\n" +
	"Fine.\n\n" +
	"00:00:03.850 --> 00:00:04.500\n" +
	"Thanks\n"

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// ReadFile returns the contents of path or fails the test.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
