// Package config loads, normalizes, and validates summerpool configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// SUMMERPOOL_NTFY_TOPIC. The season section carries the scoring knobs: the
// release window for distributor totals, Top-N sizes, the ordered month list
// and the monthly winners.
package config
