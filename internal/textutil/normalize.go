package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const byteOrderMark = "\ufeff"

// lineEndingReplacer converts Windows and classic Mac line endings to LF.
var lineEndingReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeInput prepares decoded subtitle text for line scanning: a leading
// byte order mark is removed and line endings become LF. Line content is left
// untouched.
func NormalizeInput(text string) string {
	text = strings.TrimPrefix(text, byteOrderMark)
	return lineEndingReplacer.Replace(text)
}

// NormalizeText puts a caption line into Unicode normalization form C so
// composed and decomposed accents measure the same.
func NormalizeText(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}

// DisplayLength returns the number of characters in s as a caption reader
// sees them.
func DisplayLength(s string) int {
	return utf8.RuneCountInString(s)
}

// CollapseSpaces trims s and replaces every run of two or more whitespace
// characters with a single space. Single interior whitespace is left as is.
func CollapseSpaces(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	run := 0
	var pending rune
	for _, r := range s {
		if unicode.IsSpace(r) {
			run++
			pending = r
			continue
		}
		switch {
		case run == 1:
			b.WriteRune(pending)
		case run > 1:
			b.WriteByte(' ')
		}
		run = 0
		b.WriteRune(r)
	}
	return b.String()
}
