// Package passes implements the caption normalization passes and the
// pipeline that folds them over a parsed document.
//
// Every pass takes a vtt.Document and returns a new one, reporting anomalies to
// a per-call diagnostics.Collector. FixPipeline returns the structural passes
// of the fix operation in order: entity replacement, line wrapping, space
// normalization, duration and line-count splitting, short caption merging,
// gap checking, timing adjustment and final validation. OutputFormat renders
// the result. SpeakerDash is independent of the fix pipeline.
package passes
