// Package notifications pushes pool events to ntfy.
//
// NewService returns a no-op implementation when no topic is configured, so
// callers never branch on whether notifications are enabled. Per-event toggles
// in config.toml silence standings or error pushes individually.
package notifications
