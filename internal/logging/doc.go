// Package logging assembles the structured slog loggers used across
// summerpool.
//
// It owns the console and JSON handlers, level and output plumbing, the
// per-run log file, and context helpers that tag log lines with run IDs and
// pipeline stages. A no-op logger is provided for tests and for wiring code
// that runs before configuration is available.
package logging
