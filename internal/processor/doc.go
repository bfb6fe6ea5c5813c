// Package processor orchestrates the caption operations: fix, speaker dashes,
// screen cover, resync and the combined "all" run.
//
// Each call parses its input, folds the configured passes over the document
// and returns a Result carrying the rendered text together with the
// diagnostics produced by that call alone. Screen cover and resync are
// delegated to Coverer and Syncer collaborators whose defaults return the text
// unchanged.
package processor
