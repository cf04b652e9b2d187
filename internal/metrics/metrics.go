// Package metrics exports per-run gauges in the Prometheus text format so a
// node_exporter textfile collector can scrape pool runs.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"summerpool/internal/boxoffice"
	"summerpool/internal/standings"
)

// RunMetrics holds the collectors for one run on a private registry.
type RunMetrics struct {
	registry        *prometheus.Registry
	sourceRows      *prometheus.GaugeVec
	parseIssues     *prometheus.GaugeVec
	referenceTitles prometheus.Gauge
	matchedMovies   prometheus.Gauge
	unmatchedTitles prometheus.Gauge
	rankedDists     prometheus.Gauge
	entriesScored   prometheus.Gauge
	leaderPoints    prometheus.Gauge
	lastRun         prometheus.Gauge
	runDuration     prometheus.Gauge
	runSuccess      prometheus.Gauge
}

// New registers the run collectors.
func New() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		sourceRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "summerpool_source_rows",
			Help: "Rows read from each box office chart.",
		}, []string{"chart"}),
		parseIssues: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "summerpool_parse_issues",
			Help: "Chart rows that were skipped or had unusable cells, by reason.",
		}, []string{"reason"}),
		referenceTitles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "summerpool_reference_titles",
			Help: "Titles in the curated reference list.",
		}),
		matchedMovies: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "summerpool_matched_movies",
			Help: "Gross chart rows matched to a reference title.",
		}),
		unmatchedTitles: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "summerpool_unmatched_reference_titles",
			Help: "Reference titles with no gross chart row.",
		}),
		rankedDists: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "summerpool_ranked_distributors",
			Help: "Distributors in the published ranking.",
		}),
		entriesScored: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "summerpool_entries_scored",
			Help: "Pool entries on the leaderboard.",
		}),
		leaderPoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "summerpool_leader_points",
			Help: "Points held by the current leader.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "summerpool_last_run_timestamp_seconds",
			Help: "Unix time the last run finished.",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "summerpool_run_duration_seconds",
			Help: "Wall time of the last run.",
		}),
		runSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "summerpool_last_run_success",
			Help: "1 if the last run produced standings, 0 otherwise.",
		}),
	}
	m.registry.MustRegister(
		m.sourceRows,
		m.parseIssues,
		m.referenceTitles,
		m.matchedMovies,
		m.unmatchedTitles,
		m.rankedDists,
		m.entriesScored,
		m.leaderPoints,
		m.lastRun,
		m.runDuration,
		m.runSuccess,
	)
	return m
}

// Registry exposes the underlying registry for tests and custom exporters.
func (m *RunMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveStandings records a successful run.
func (m *RunMetrics) ObserveStandings(st *standings.Standings, parse boxoffice.ParseStats, finished time.Time, elapsed time.Duration) {
	if m == nil || st == nil {
		return
	}
	diag := st.Diagnostics
	m.sourceRows.WithLabelValues("gross").Set(float64(diag.GrossRows))
	m.sourceRows.WithLabelValues("distributors").Set(float64(diag.DistributorRows))
	m.observeParse(parse)
	m.referenceTitles.Set(float64(diag.ReferenceTitles))
	m.matchedMovies.Set(float64(diag.MatchedMovies))
	m.unmatchedTitles.Set(float64(len(diag.Unmatched)))
	m.rankedDists.Set(float64(len(st.Distributors)))
	m.entriesScored.Set(float64(len(st.Results)))
	if leader, ok := st.Leader(); ok {
		m.leaderPoints.Set(float64(leader.Points))
	} else {
		m.leaderPoints.Set(0)
	}
	m.finish(finished, elapsed, true)
}

// ObserveFailure records a run that ended in an error.
func (m *RunMetrics) ObserveFailure(parse boxoffice.ParseStats, finished time.Time, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.observeParse(parse)
	m.finish(finished, elapsed, false)
}

func (m *RunMetrics) observeParse(parse boxoffice.ParseStats) {
	m.parseIssues.WithLabelValues("skipped").Set(float64(parse.Skipped))
	m.parseIssues.WithLabelValues("bad_date").Set(float64(parse.BadDates))
	m.parseIssues.WithLabelValues("bad_amount").Set(float64(parse.BadAmounts))
}

func (m *RunMetrics) finish(finished time.Time, elapsed time.Duration, ok bool) {
	m.lastRun.Set(float64(finished.Unix()))
	m.runDuration.Set(elapsed.Seconds())
	if ok {
		m.runSuccess.Set(1)
	} else {
		m.runSuccess.Set(0)
	}
}

// WriteTextfile writes the registry to path. An empty path is a no-op.
func (m *RunMetrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
