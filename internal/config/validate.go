package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSeason(); err != nil {
		return err
	}
	if err := ensurePositiveMap(map[string]int{
		"source.timeout_seconds":        c.Source.TimeoutSeconds,
		"notifications.request_timeout": c.Notifications.RequestTimeout,
	}); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.ReferenceCSV == "" {
		return errors.New("paths.reference_csv must be set")
	}
	if c.Paths.EntriesCSV == "" {
		return errors.New("paths.entries_csv must be set")
	}
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateSeason() error {
	if c.Season.Year < 1900 || c.Season.Year > 2100 {
		return errors.New("season.year must be between 1900 and 2100")
	}
	start, err := time.Parse(time.DateOnly, c.Season.WindowStart)
	if err != nil {
		return fmt.Errorf("season.window_start must be YYYY-MM-DD, got %q", c.Season.WindowStart)
	}
	end, err := time.Parse(time.DateOnly, c.Season.WindowEnd)
	if err != nil {
		return fmt.Errorf("season.window_end must be YYYY-MM-DD, got %q", c.Season.WindowEnd)
	}
	if !end.After(start) {
		return errors.New("season.window_end must be after season.window_start")
	}
	if err := ensurePositiveMap(map[string]int{
		"season.top_movies":       c.Season.TopMovies,
		"season.top_distributors": c.Season.TopDistributors,
	}); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(c.Season.Months))
	for _, month := range c.Season.Months {
		folded := strings.ToLower(month)
		if _, dup := seen[folded]; dup {
			return fmt.Errorf("season.months lists %q twice", month)
		}
		seen[folded] = struct{}{}
	}
	for month := range c.Season.MonthlyWinners {
		if !slices.Contains(c.Season.Months, month) {
			return fmt.Errorf("season.monthly_winners has %q which is not in season.months", month)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	if c.Logging.RetentionDays < 0 {
		return errors.New("logging.retention_days must not be negative")
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if values[key] <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
