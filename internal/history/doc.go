// Package history records processing runs and their diagnostics in a SQLite
// database so earlier results can be listed and inspected from the CLI.
//
// The schema is embedded and versioned; opening a database created by a
// different schema version fails with ErrSchemaMismatch.
package history
