package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"summerpool/internal/aliases"
	"summerpool/internal/boxoffice"
	"summerpool/internal/config"
	"summerpool/internal/entries"
	"summerpool/internal/history"
	"summerpool/internal/logging"
	"summerpool/internal/ranking"
	"summerpool/internal/reference"
	"summerpool/internal/standings"
)

type commandContext struct {
	configFlag *string
	debugFlag  *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag *string, debugFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		debugFlag:  debugFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(c.configFlagValue())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) configFlagValue() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) debug() bool {
	return c.debugFlag != nil && *c.debugFlag
}

// newLogger builds the command logger. A non-empty runID also tees the run
// into its own JSON log file and prunes expired run logs.
func (c *commandContext) newLogger(cfg *config.Config, runID string) (*slog.Logger, error) {
	logger, err := logging.NewFromConfig(cfg, runID, c.debug())
	if err != nil {
		return nil, err
	}
	if runID != "" && cfg != nil {
		keep := logging.RunLogPath(cfg.Paths.LogDir, runID)
		logging.CleanupOldLogs(logger, cfg.Paths.LogDir, cfg.Logging.RetentionDays, keep)
	}
	return logger, nil
}

// pipeline bundles the standings service with the chart client that feeds it,
// so callers can read parse counters after a run.
type pipeline struct {
	service *standings.Service
	client  *boxoffice.Client
}

func buildPipeline(cfg *config.Config, logger *slog.Logger, runID string) (*pipeline, error) {
	table, err := aliases.Load(cfg.Paths.AliasesPath, logging.NewComponentLogger(logger, "aliases"))
	if err != nil {
		return nil, err
	}
	client, err := boxoffice.New(
		cfg.GrossLocation(),
		cfg.DistributorsLocation(),
		boxoffice.WithUserAgent(cfg.Source.UserAgent),
		boxoffice.WithHTTPClient(&http.Client{Timeout: cfg.SourceTimeout()}),
		boxoffice.WithLogger(logging.NewComponentLogger(logger, "boxoffice")),
	)
	if err != nil {
		return nil, err
	}
	settings := standings.Settings{
		TopMovies:       cfg.Season.TopMovies,
		TopDistributors: cfg.Season.TopDistributors,
		Window:          seasonWindow(cfg),
		Months:          cfg.Season.Months,
		MonthlyWinners:  cfg.Season.MonthlyWinners,
	}
	service := standings.NewService(
		reference.FileLoader{Path: cfg.Paths.ReferenceCSV},
		client,
		client,
		entries.FileLoader{Path: cfg.Paths.EntriesCSV, Months: cfg.Season.Months, Logger: logger},
		settings,
		standings.WithLogger(logger),
		standings.WithAliases(table),
		standings.WithRunID(runID),
	)
	return &pipeline{service: service, client: client}, nil
}

func seasonWindow(cfg *config.Config) ranking.Window {
	start, end := cfg.Window()
	return ranking.Window{Start: start, End: end}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// withHistory opens the run history for the duration of fn.
func (c *commandContext) withHistory(fn func(cfg *config.Config, store *history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()
	return fn(cfg, store)
}
