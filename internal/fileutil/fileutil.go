package fileutil

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"captionfix/internal/services"
	"captionfix/internal/textutil"
)

// StdioPath selects standard input or output instead of a file.
const StdioPath = "-"

const lockRetryDelay = 50 * time.Millisecond

// ReadInput reads the caption text at path, or stdin when path is "-".
func ReadInput(path string, stdin io.Reader) (string, error) {
	if path == StdioPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", services.Wrap(services.ErrIO, "fileutil", "read stdin", "", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", services.Wrap(services.ErrNotFound, "fileutil", "read input", path, err)
		}
		return "", services.Wrap(services.ErrIO, "fileutil", "read input", path, err)
	}
	return string(data), nil
}

// WriteFileLocked replaces path with data. Writers to the same path are
// serialized through an advisory lock file next to it, and the content is
// written to a temporary file and renamed so readers never see a partial
// file. The wait for the lock honours ctx.
func WriteFileLocked(ctx context.Context, path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return services.Wrap(services.ErrIO, "fileutil", "create output directory", dir, err)
	}

	lockPath := path + ".lock"
	lock := flock.New(lockPath)
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return services.Wrap(services.ErrIO, "fileutil", "acquire lock", lockPath, err)
	}
	if !locked {
		return services.Wrap(services.ErrIO, "fileutil", "acquire lock", lockPath+" is held by another process", nil)
	}
	// The lock file stays on disk; removing it would let a waiter and a new
	// writer hold locks on different inodes.
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return services.Wrap(services.ErrIO, "fileutil", "create temp file", dir, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return services.Wrap(services.ErrIO, "fileutil", "write temp file", tmpPath, err)
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		cleanup()
		return services.Wrap(services.ErrIO, "fileutil", "chmod temp file", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return services.Wrap(services.ErrIO, "fileutil", "close temp file", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return services.Wrap(services.ErrIO, "fileutil", "rename output", path, err)
	}
	return nil
}

// DerivedOutputPath names the output for input processed in mode:
// "talk.vtt" becomes "talk.fixed.vtt" for the fix mode. The file is placed in
// outputDir when set, otherwise next to the input. Input from stdin has no
// derived path.
func DerivedOutputPath(input, mode, outputDir string) (string, error) {
	if input == StdioPath || strings.TrimSpace(input) == "" {
		return "", fmt.Errorf("no output path can be derived from %q", input)
	}
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if ext == "" {
		ext = ".vtt"
	}
	stem = textutil.SanitizeFileName(stem)
	if stem == "" {
		stem = "captions"
	}
	name := fmt.Sprintf("%s.%s%s", stem, modeSuffix(mode), ext)

	dir := filepath.Dir(input)
	if strings.TrimSpace(outputDir) != "" {
		dir = outputDir
	}
	return filepath.Join(dir, name), nil
}

func modeSuffix(mode string) string {
	switch token := textutil.SanitizeToken(mode); token {
	case "fix":
		return "fixed"
	case "speakers":
		return "speakers"
	case "all":
		return "processed"
	default:
		return token
	}
}
