// Package main hosts the captionfix CLI entrypoint and command graph.
//
// The Cobra-based command tree reads WebVTT captions from a file or stdin,
// runs them through the processor in the selected mode, and writes the
// result to stdout or a file. Around that core it records each run in the
// history database, exports diagnostics reports, and offers configuration
// scaffolding and a readiness check.
//
// Keep this package lean: processing behaviour belongs in internal/processor
// and internal/passes; commands here only translate flags into calls and
// render the outcome.
package main
