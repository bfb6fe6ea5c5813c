package textutil

import (
	"strings"
	"unicode"
)

// unsafeNameChars are dropped or replaced when a caption file name is derived.
var unsafeNameChars = strings.NewReplacer(
	"/", "-", "\\", "-", ":", "-", "*", "-",
	"?", "", "\"", "", "<", "", ">", "", "|", "",
)

// SanitizeFileName makes name safe to use as a single path element. Path
// separators and a few shell-hostile characters become dashes, the rest of
// the unsafe set is removed, and control characters are stripped.
func SanitizeFileName(name string) string {
	name = unsafeNameChars.Replace(strings.TrimSpace(name))
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	return strings.Trim(strings.TrimSpace(name), ".")
}

// SanitizeToken lowercases value and keeps only ASCII letters, digits, dashes
// and underscores, replacing anything else with an underscore. Empty results
// become "unknown".
func SanitizeToken(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('_')
	}
	if out := strings.Trim(b.String(), "_-"); out != "" {
		return out
	}
	return "unknown"
}
