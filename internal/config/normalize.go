package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSource(); err != nil {
		return err
	}
	c.normalizeSeason()
	c.normalizeNotifications()
	if err := c.normalizeMetrics(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		key      string
		value    *string
		fallback string
	}{
		{"paths.reference_csv", &c.Paths.ReferenceCSV, defaultReferenceCSV},
		{"paths.entries_csv", &c.Paths.EntriesCSV, defaultEntriesCSV},
		{"paths.output_dir", &c.Paths.OutputDir, defaultOutputDir},
		{"paths.data_dir", &c.Paths.DataDir, defaultDataDir},
		{"paths.log_dir", &c.Paths.LogDir, defaultLogDir},
		{"paths.aliases_path", &c.Paths.AliasesPath, ""},
	}
	for _, f := range fields {
		trimmed := strings.TrimSpace(*f.value)
		if trimmed == "" {
			trimmed = f.fallback
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
		*f.value = expanded
	}
	return nil
}

func (c *Config) normalizeSource() error {
	c.Source.GrossURL = strings.TrimSpace(c.Source.GrossURL)
	if value, ok := os.LookupEnv("SUMMERPOOL_GROSS_URL"); ok && strings.TrimSpace(value) != "" {
		c.Source.GrossURL = strings.TrimSpace(value)
	}
	if c.Source.GrossURL == "" {
		c.Source.GrossURL = defaultGrossURL
	}
	c.Source.DistributorsURL = strings.TrimSpace(c.Source.DistributorsURL)
	if value, ok := os.LookupEnv("SUMMERPOOL_DISTRIBUTORS_URL"); ok && strings.TrimSpace(value) != "" {
		c.Source.DistributorsURL = strings.TrimSpace(value)
	}
	if c.Source.DistributorsURL == "" {
		c.Source.DistributorsURL = defaultDistributorsURL
	}
	c.Source.UserAgent = strings.TrimSpace(c.Source.UserAgent)
	if c.Source.UserAgent == "" {
		c.Source.UserAgent = defaultUserAgent
	}

	var err error
	if c.Source.GrossFile, err = expandPath(strings.TrimSpace(c.Source.GrossFile)); err != nil {
		return fmt.Errorf("source.gross_file: %w", err)
	}
	if c.Source.DistributorsFile, err = expandPath(strings.TrimSpace(c.Source.DistributorsFile)); err != nil {
		return fmt.Errorf("source.distributors_file: %w", err)
	}
	return nil
}

// normalizeSeason fills the window from the season year and re-keys monthly
// winners by the configured month spelling.
func (c *Config) normalizeSeason() {
	year := strconv.Itoa(c.Season.Year)
	c.Season.WindowStart = strings.TrimSpace(c.Season.WindowStart)
	if c.Season.WindowStart == "" {
		c.Season.WindowStart = year + windowStartMonthDay
	}
	c.Season.WindowEnd = strings.TrimSpace(c.Season.WindowEnd)
	if c.Season.WindowEnd == "" {
		c.Season.WindowEnd = year + windowEndMonthDay
	}

	months := make([]string, 0, len(c.Season.Months))
	for _, month := range c.Season.Months {
		if month = strings.TrimSpace(month); month != "" {
			months = append(months, month)
		}
	}
	if len(months) == 0 {
		months = append(months, defaultMonths...)
	}
	c.Season.Months = months

	winners := make(map[string]string, len(c.Season.MonthlyWinners))
	for key, title := range c.Season.MonthlyWinners {
		key = strings.TrimSpace(key)
		canonical := key
		for _, month := range months {
			if strings.EqualFold(month, key) {
				canonical = month
				break
			}
		}
		winners[canonical] = strings.TrimSpace(title)
	}
	c.Season.MonthlyWinners = winners
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.NtfyTopic == "" {
		if value, ok := os.LookupEnv("SUMMERPOOL_NTFY_TOPIC"); ok {
			c.Notifications.NtfyTopic = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeMetrics() error {
	path, err := expandPath(strings.TrimSpace(c.Metrics.TextfilePath))
	if err != nil {
		return fmt.Errorf("metrics.textfile_path: %w", err)
	}
	c.Metrics.TextfilePath = path
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
