// Package config loads, normalizes, and validates captionfix configuration.
//
// It supplies repository defaults for the caption rules (line length, line
// count, duration and gap thresholds), expands user paths including tilde
// shortcuts, reads TOML files, and honours the CAPTIONFIX_LOG_LEVEL and
// CAPTIONFIX_HISTORY_DB environment overrides.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
