// Package vtt models WebVTT-style cue files.
//
// It owns the millisecond timestamp codec (HH:MM:SS.mmm), the two-state
// segmenter that turns raw text into literal lines and cues, and the renderer
// that writes a Document back to text. Cue settings after the end timestamp
// are carried verbatim and never interpreted.
//
// Malformed timestamps surface as *FormatError, which matches
// services.ErrFormat so callers can abort the whole operation.
package vtt
