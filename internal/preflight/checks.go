package preflight

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"golang.org/x/sys/unix"

	"captionfix/internal/history"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if path == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckHistory opens the history database and counts its runs. Opening
// creates the schema when the file is new.
func CheckHistory(ctx context.Context, path string) Result {
	const name = "History database"

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	store, err := history.OpenPath(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	defer store.Close()

	n, err := store.Count(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d runs)", path, n)}
}

// CheckClipboard reports whether --copy can reach a system clipboard. A
// missing clipboard utility is not fatal, so the check always passes.
func CheckClipboard() Result {
	const name = "Clipboard"
	if clipboard.Unsupported {
		return Result{Name: name, Passed: true, Detail: "unavailable (install xclip, xsel or wl-clipboard for --copy)"}
	}
	return Result{Name: name, Passed: true, Detail: "available"}
}
