package processor

import (
	"fmt"
	"strings"

	"captionfix/internal/services"
)

// Mode names a top-level processing operation.
type Mode string

const (
	ModeFix      Mode = "fix"
	ModeSpeakers Mode = "speakers"
	ModeCover    Mode = "cover"
	ModeSync     Mode = "sync"
	ModeAll      Mode = "all"
)

// Modes lists every mode in CLI order.
func Modes() []Mode {
	return []Mode{ModeFix, ModeSpeakers, ModeCover, ModeSync, ModeAll}
}

// ParseMode resolves a mode name case-insensitively.
func ParseMode(value string) (Mode, error) {
	candidate := Mode(strings.ToLower(strings.TrimSpace(value)))
	for _, mode := range Modes() {
		if mode == candidate {
			return mode, nil
		}
	}
	return "", services.Wrap(services.ErrValidation, "processor", "parse mode", fmt.Sprintf("unknown mode %q", value), nil)
}
