package ranking

import (
	"cmp"
	"slices"

	"summerpool/internal/aliases"
	"summerpool/internal/boxoffice"
	"summerpool/internal/normalize"
)

// DefaultTopMovies is the movie list length used when a limit is not positive.
const DefaultTopMovies = 10

// RankedMovie is a reference title with the gross reported by the source.
// Title carries the reference list's spelling, not the source's.
type RankedMovie struct {
	Title string
	Gross int64
}

// MatchResult is the full outcome of TopMovies, useful for diagnostics.
type MatchResult struct {
	Top       []RankedMovie
	Matched   int
	Unmatched []string // reference titles with no source row
}

// TopMovies returns the highest-grossing source rows whose titles appear in the
// reference list. When two reference titles share a key the later one wins.
// Title aliases in table, if any, are consulted for source titles that do not
// match directly.
func TopMovies(reference []string, rows []boxoffice.GrossRow, limit int, table *aliases.Table) []RankedMovie {
	return MatchMovies(reference, rows, limit, table).Top
}

// MatchMovies is TopMovies with match diagnostics.
func MatchMovies(reference []string, rows []boxoffice.GrossRow, limit int, table *aliases.Table) MatchResult {
	if limit <= 0 {
		limit = DefaultTopMovies
	}
	byKey := make(map[string]string, len(reference))
	for _, title := range reference {
		if key := normalize.Key(title); key != "" {
			byKey[key] = title
		}
	}

	seen := make(map[string]bool, len(byKey))
	matched := make([]RankedMovie, 0, len(byKey))
	for _, row := range rows {
		key := normalize.Key(row.Title)
		title, ok := byKey[key]
		if !ok && table != nil {
			key = table.TitleKey(row.Title)
			title, ok = byKey[key]
		}
		if !ok {
			continue
		}
		seen[key] = true
		matched = append(matched, RankedMovie{Title: title, Gross: row.Gross})
	}

	slices.SortStableFunc(matched, func(a, b RankedMovie) int {
		return cmp.Compare(b.Gross, a.Gross)
	})

	result := MatchResult{Matched: len(matched)}
	result.Top = matched[:min(limit, len(matched))]
	for _, title := range reference {
		key := normalize.Key(title)
		if key != "" && !seen[key] && byKey[key] == title {
			result.Unmatched = append(result.Unmatched, title)
		}
	}
	return result
}
