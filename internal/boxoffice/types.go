package boxoffice

import (
	"errors"
	"time"
)

// ErrTableNotFound indicates the fetched page had no recognisable chart table.
var ErrTableNotFound = errors.New("box office table not found")

// GrossRow is one line of the cumulative domestic chart.
type GrossRow struct {
	Title string
	Gross int64
}

// MovieRecord is one line of the yearly chart. A zero ReleaseDate means the
// date was missing or could not be parsed.
type MovieRecord struct {
	Title          string
	Gross          int64
	ReleaseDate    time.Time
	DistributorRaw string
}

// HasReleaseDate reports whether the record carries a usable release date.
func (r MovieRecord) HasReleaseDate() bool {
	return !r.ReleaseDate.IsZero()
}

// ParseStats summarises how tolerant parsing treated a table.
type ParseStats struct {
	Rows       int
	Skipped    int
	BadDates   int
	BadAmounts int
}

// Add accumulates another table's counters.
func (s *ParseStats) Add(other ParseStats) {
	s.Rows += other.Rows
	s.Skipped += other.Skipped
	s.BadDates += other.BadDates
	s.BadAmounts += other.BadAmounts
}
