package preflight

import (
	"context"

	"summerpool/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Options selects the optional checks.
type Options struct {
	// Network enables source reachability checks. Snapshot files are checked
	// either way.
	Network bool
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
		CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckReferenceList(cfg.Paths.ReferenceCSV),
		CheckEntries(cfg.Paths.EntriesCSV, cfg.Season.Months),
		CheckAliases(cfg.Paths.AliasesPath),
	}

	for _, source := range []struct {
		name     string
		location string
	}{
		{"Gross chart", cfg.GrossLocation()},
		{"Distributor chart", cfg.DistributorsLocation()},
	} {
		if !opts.Network && isRemote(source.location) {
			results = append(results, Result{Name: source.name, Passed: true, Detail: source.location + " (not checked)"})
			continue
		}
		results = append(results, CheckSource(ctx, source.name, source.location, cfg.Source.UserAgent))
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
