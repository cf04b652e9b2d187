package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains input files and working directories.
type Paths struct {
	ReferenceCSV string `toml:"reference_csv"`
	EntriesCSV   string `toml:"entries_csv"`
	OutputDir    string `toml:"output_dir"`
	DataDir      string `toml:"data_dir"`
	LogDir       string `toml:"log_dir"`
	AliasesPath  string `toml:"aliases_path"`
}

// Source contains the box office chart locations. A non-empty *_file setting
// points at a saved HTML snapshot and takes precedence over the matching URL.
type Source struct {
	GrossURL         string `toml:"gross_url"`
	DistributorsURL  string `toml:"distributors_url"`
	GrossFile        string `toml:"gross_file"`
	DistributorsFile string `toml:"distributors_file"`
	UserAgent        string `toml:"user_agent"`
	TimeoutSeconds   int    `toml:"timeout_seconds"`
}

// Season describes the pool being scored.
type Season struct {
	Year            int      `toml:"year"`
	WindowStart     string   `toml:"window_start"` // inclusive, YYYY-MM-DD
	WindowEnd       string   `toml:"window_end"`   // exclusive, YYYY-MM-DD
	TopMovies       int      `toml:"top_movies"`
	TopDistributors int      `toml:"top_distributors"`
	Months          []string `toml:"months"`
	// MonthlyWinners maps a month name to the winning title. An empty title
	// means the month is still undecided and awards no points.
	MonthlyWinners map[string]string `toml:"monthly_winners"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
	Standings      bool   `toml:"standings"`
	Errors         bool   `toml:"errors"`
}

// Metrics controls the Prometheus textfile written after each run.
type Metrics struct {
	TextfilePath string `toml:"textfile_path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for summerpool.
type Config struct {
	Paths         Paths         `toml:"paths"`
	Source        Source        `toml:"source"`
	Season        Season        `toml:"season"`
	Notifications Notifications `toml:"notifications"`
	Metrics       Metrics       `toml:"metrics"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		// A monthly_winners table in the file replaces the defaults wholesale.
		defaultWinners := cfg.Season.MonthlyWinners
		cfg.Season.MonthlyWinners = nil

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, "", false, fmt.Errorf("parse config: %s", strict.String())
			}
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
		if cfg.Season.MonthlyWinners == nil {
			cfg.Season.MonthlyWinners = defaultWinners
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("summerpool.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output, data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// GrossLocation returns the snapshot file when configured, else the chart URL.
func (c *Config) GrossLocation() string {
	if c.Source.GrossFile != "" {
		return c.Source.GrossFile
	}
	return c.Source.GrossURL
}

// DistributorsLocation returns the snapshot file when configured, else the chart URL.
func (c *Config) DistributorsLocation() string {
	if c.Source.DistributorsFile != "" {
		return c.Source.DistributorsFile
	}
	return c.Source.DistributorsURL
}

// SourceTimeout returns the HTTP timeout for chart requests.
func (c *Config) SourceTimeout() time.Duration {
	return time.Duration(c.Source.TimeoutSeconds) * time.Second
}

// Window returns the release window used for distributor totals. Both values
// were checked by Validate; start is inclusive and end exclusive.
func (c *Config) Window() (time.Time, time.Time) {
	start, _ := time.Parse(time.DateOnly, c.Season.WindowStart)
	end, _ := time.Parse(time.DateOnly, c.Season.WindowEnd)
	return start, end
}

// HistoryPath is the SQLite database recording past runs.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.DataDir, "history.db")
}

// LockPath is the file lock that serializes standings runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "summerpool.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
