// Package services defines shared utilities consumed by the caption passes,
// the processor and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, processing modes, and source paths
//     for logging and history records.
//   - Structured error markers plus the Wrap helper that classify failures
//     (malformed input vs configuration vs I/O) into consistent exit codes.
//
// Use these helpers when wiring new commands so operational behaviour (error
// handling, observability) stays uniform across the tool.
package services
