// Package preflight provides readiness checks for the filesystem locations
// and optional integrations captionfix relies on.
//
// The CLI "captionfix check" command runs every applicable check and renders
// the results as a table. Processing commands do not call it; a failure there
// surfaces as an I/O error from the operation itself.
package preflight
