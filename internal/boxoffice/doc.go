// Package boxoffice fetches and parses the public box-office charts the pool
// is scored against.
//
// Two tables are consumed: the cumulative domestic gross chart (title and
// gross) and the yearly top-grossing chart (title, release date, distributor
// and gross). Parsing is deliberately tolerant. Rows that cannot be read are
// skipped and counted in ParseStats, unreadable dates leave ReleaseDate zero,
// and unreadable amounts count as zero.
package boxoffice
