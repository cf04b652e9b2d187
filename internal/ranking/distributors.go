package ranking

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"summerpool/internal/aliases"
	"summerpool/internal/boxoffice"
	"summerpool/internal/normalize"
)

// DefaultTopDistributors is the distributor list length used when a limit is not positive.
const DefaultTopDistributors = 5

// Window is a half-open release date range: Start is included, End is not.
type Window struct {
	Start time.Time
	End   time.Time
}

// DefaultWindow covers releases from May 1 up to, not including, September 1.
func DefaultWindow(year int) Window {
	return Window{
		Start: time.Date(year, time.May, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.September, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Contains reports whether t falls inside the window. The zero time never does.
func (w Window) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(w.Start) && t.Before(w.End)
}

// RankedDistributor is a canonical distributor with its summed gross and
// 1-based rank.
type RankedDistributor struct {
	Name       string
	TotalGross int64
	Rank       int
}

// DistributorTotals folds in-window records with positive gross into per
// distributor totals. Every non-empty part of the credit receives the full
// gross of the record, even when two parts alias to the same name. Only a
// blank credit counts toward Unknown. The returned order is first appearance.
func DistributorTotals(records []boxoffice.MovieRecord, window Window, table *aliases.Table) (map[string]int64, []string) {
	totals := make(map[string]int64)
	var order []string
	for _, record := range records {
		if record.Gross <= 0 || !window.Contains(record.ReleaseDate) {
			continue
		}
		var parts []string
		if strings.TrimSpace(record.DistributorRaw) == "" {
			parts = []string{""}
		} else {
			parts = normalize.SplitDistributors(record.DistributorRaw)
		}
		for _, part := range parts {
			name := table.Distributor(part)
			if _, ok := totals[name]; !ok {
				order = append(order, name)
			}
			totals[name] += record.Gross
		}
	}
	return totals, order
}

// TopDistributors ranks distributors by total in-window gross, highest first.
func TopDistributors(records []boxoffice.MovieRecord, window Window, limit int, table *aliases.Table) []RankedDistributor {
	if limit <= 0 {
		limit = DefaultTopDistributors
	}
	totals, order := DistributorTotals(records, window, table)
	ranked := make([]RankedDistributor, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, RankedDistributor{Name: name, TotalGross: totals[name]})
	}
	slices.SortStableFunc(ranked, func(a, b RankedDistributor) int {
		return cmp.Compare(b.TotalGross, a.TotalGross)
	})
	ranked = ranked[:min(limit, len(ranked))]
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
