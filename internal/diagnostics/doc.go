// Package diagnostics collects the leveled side-channel entries every caption
// pass produces.
//
// A Collector belongs to exactly one processing call. The processor creates a
// fresh collector per call and merges step collectors for chained modes, so
// entries from different runs never interleave. Entries are mirrored to the
// structured logger as they are added.
package diagnostics
