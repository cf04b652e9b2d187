// Package history records every standings run in SQLite so later runs can show
// how the leaderboard moved and operators can inspect past results.
//
// The Store owns the database connection, applies embedded migrations in file
// name order, and stores each run with its ranked movies, ranked distributors
// and scored leaderboard. Runs are immutable once recorded; Prune trims the
// oldest ones.
package history
