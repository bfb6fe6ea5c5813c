package main

import (
	"errors"

	"github.com/atotto/clipboard"
)

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

func copyToClipboard(text string) error {
	if text == "" {
		return errors.New("nothing to copy")
	}
	return clipboardWrite(text)
}
