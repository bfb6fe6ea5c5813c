// Package textutil provides text helpers shared by the caption passes and the
// CLI.
//
// The primary use cases are:
//   - Normalizing decoded input (byte order mark, line endings, Unicode NFC)
//   - Measuring caption line length in characters rather than bytes
//   - Collapsing whitespace runs inside payload lines
//   - Sanitizing file names derived from input paths
package textutil
