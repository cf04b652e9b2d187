// Package aliases holds the canonical-name tables for distributors and titles.
//
// A built-in distributor table covers the major studios. Operators can extend
// or override it, and register title aliases, through a TOML file with
// [distributors] and [titles] tables.
package aliases
