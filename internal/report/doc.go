// Package report renders computed standings as the CSV and HTML leaderboards
// published after each run.
package report
