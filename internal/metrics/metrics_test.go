package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"summerpool/internal/boxoffice"
	"summerpool/internal/ranking"
	"summerpool/internal/scoring"
	"summerpool/internal/standings"
)

func TestObserveStandingsAndWriteTextfile(t *testing.T) {
	m := New()
	st := &standings.Standings{
		Distributors: []ranking.RankedDistributor{{Name: "Walt Disney", Rank: 1}},
		Results:      []scoring.Result{{Name: "Alex", Points: 16}, {Name: "Casey", Points: 2}},
		Diagnostics: standings.Diagnostics{
			ReferenceTitles: 40,
			GrossRows:       200,
			MatchedMovies:   12,
			Unmatched:       []string{"Ballerina"},
			DistributorRows: 180,
		},
	}
	finished := time.Unix(1_754_000_000, 0)
	m.ObserveStandings(st, boxoffice.ParseStats{Skipped: 2, BadDates: 3}, finished, 1500*time.Millisecond)

	if got := testutil.ToFloat64(m.leaderPoints); got != 16 {
		t.Fatalf("leader points = %v", got)
	}
	if got := testutil.ToFloat64(m.sourceRows.WithLabelValues("distributors")); got != 180 {
		t.Fatalf("distributor rows = %v", got)
	}
	if got := testutil.ToFloat64(m.runSuccess); got != 1 {
		t.Fatalf("run success = %v", got)
	}

	path := filepath.Join(t.TempDir(), "textfile", "summerpool.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		`summerpool_source_rows{chart="gross"} 200`,
		`summerpool_parse_issues{reason="bad_date"} 3`,
		"summerpool_unmatched_reference_titles 1",
		"summerpool_entries_scored 2",
		"summerpool_last_run_timestamp_seconds 1.754e+09",
		"summerpool_run_duration_seconds 1.5",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("textfile missing %q:\n%s", want, text)
		}
	}
}

func TestObserveFailure(t *testing.T) {
	m := New()
	m.ObserveFailure(boxoffice.ParseStats{}, time.Now(), time.Second)
	if got := testutil.ToFloat64(m.runSuccess); got != 0 {
		t.Fatalf("run success = %v", got)
	}
}

func TestWriteTextfileEmptyPathIsNoop(t *testing.T) {
	if err := New().WriteTextfile(""); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
	var nilMetrics *RunMetrics
	nilMetrics.ObserveStandings(&standings.Standings{}, boxoffice.ParseStats{}, time.Now(), 0)
}
