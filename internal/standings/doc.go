// Package standings runs one pass of the pool: load the reference list, fetch
// the charts, rank movies and distributors, and score every entry.
//
// Collaborators are interfaces so the pass can be driven from saved snapshots
// or fakes as easily as from the live charts.
package standings
