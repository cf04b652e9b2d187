// Package services defines shared utilities consumed by the standings pipeline
// and its external collaborators.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and correlation
//     identifiers for logging.
//   - Structured error markers plus the Wrap helper so the CLI can classify a
//     failure and print a useful hint.
package services
