package config

const (
	defaultConfigPath       = "~/.config/summerpool/config.toml"
	defaultReferenceCSV     = "summer_movies.csv"
	defaultEntriesCSV       = "entries.csv"
	defaultOutputDir        = "."
	defaultDataDir          = "~/.local/share/summerpool"
	defaultLogDir           = "~/.local/share/summerpool/logs"
	defaultAliasesPath      = "~/.config/summerpool/aliases.toml"
	defaultGrossURL         = "https://www.the-numbers.com/box-office-records/domestic/all-movies/cumulative/released-in-2025"
	defaultDistributorsURL  = "https://www.the-numbers.com/market/2025/top-grossing-movies"
	defaultUserAgent        = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"
	defaultSourceTimeout    = 30
	defaultSeasonYear       = 2025
	defaultTopMovies        = 10
	defaultTopDistributors  = 5
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogRetentionDays = 30
	defaultNotifyTimeout    = 10
	windowStartMonthDay     = "-05-01"
	windowEndMonthDay       = "-09-01"
)

var defaultMonths = []string{"May", "June", "July", "August"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ReferenceCSV: defaultReferenceCSV,
			EntriesCSV:   defaultEntriesCSV,
			OutputDir:    defaultOutputDir,
			DataDir:      defaultDataDir,
			LogDir:       defaultLogDir,
			AliasesPath:  defaultAliasesPath,
		},
		Source: Source{
			GrossURL:        defaultGrossURL,
			DistributorsURL: defaultDistributorsURL,
			UserAgent:       defaultUserAgent,
			TimeoutSeconds:  defaultSourceTimeout,
		},
		Season: Season{
			Year:            defaultSeasonYear,
			TopMovies:       defaultTopMovies,
			TopDistributors: defaultTopDistributors,
			Months:          append([]string(nil), defaultMonths...),
			MonthlyWinners: map[string]string{
				"May":    "Lilo & Stitch",
				"June":   "How to Train Your Dragon",
				"July":   "Superman",
				"August": "",
			},
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyTimeout,
			Standings:      true,
			Errors:         true,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
