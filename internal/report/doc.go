// Package report exports the outcome of a processing run as a JSON or YAML
// document. The format follows the file extension of the target path.
package report
