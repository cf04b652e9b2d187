// Package main hosts the summerpool CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, builds the standings
// service from the configured inputs, and renders results as tables, JSON or
// exported leaderboard files. A standings run holds a file lock so two runs
// never race on the history database or the exports.
//
// Keep this package lean: domain logic lives in internal/, commands here only
// wire it together and present the results.
package main
