package testsupport

import (
	"path/filepath"
	"testing"

	"summerpool/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Sources are left empty; point them at fixtures with WithSources.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.ReferenceCSV = filepath.Join(base, "summer_movies.csv")
	cfgVal.Paths.EntriesCSV = filepath.Join(base, "entries.csv")
	cfgVal.Paths.OutputDir = filepath.Join(base, "public")
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.AliasesPath = filepath.Join(base, "aliases.toml")
	cfgVal.Source.GrossURL = ""
	cfgVal.Source.DistributorsURL = ""
	cfgVal.Season.WindowStart = "2025-05-01"
	cfgVal.Season.WindowEnd = "2025-09-01"
	cfgVal.Notifications.NtfyTopic = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithSources points the gross and distributor charts at the given locations,
// either snapshot files or URLs.
func WithSources(gross, distributors string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Source.GrossURL = gross
		b.cfg.Source.DistributorsURL = distributors
	}
}

// WithNtfyTopic enables notifications against the given topic URL.
func WithNtfyTopic(topic string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topic
	}
}

// WithMonthlyWinners replaces the configured months and winners.
func WithMonthlyWinners(months []string, winners map[string]string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Season.Months = months
		b.cfg.Season.MonthlyWinners = winners
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.DataDir)
}
