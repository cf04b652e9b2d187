// Package entries loads pool entries: one row per participant with ten ranked
// movie picks, one guess per scored month and up to three distributor guesses.
package entries

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"summerpool/internal/logging"
)

const (
	// PickCount is the number of ranked movie picks per entry.
	PickCount = 10
	// DistributorGuessCount is the number of ranked distributor guesses per entry.
	DistributorGuessCount = 3
)

var (
	// ErrMissingEntriesFile indicates the entries file does not exist.
	ErrMissingEntriesFile = errors.New("entries file missing")
	// ErrMissingNameColumn indicates the header row has no Name column.
	ErrMissingNameColumn = errors.New(`entries header must include "Name"`)
)

// PoolEntry is one participant's submission. MoviePicks always has PickCount
// elements and DistributorGuesses DistributorGuessCount; blanks are "".
type PoolEntry struct {
	Name               string
	MoviePicks         []string
	MonthlyGuesses     map[string]string
	DistributorGuesses []string
}

// LoadStats counts rows that were read and rows that were skipped.
type LoadStats struct {
	Rows    int
	Skipped int
}

// Load reads entries from a CSV file. months lists the month columns to read.
func Load(path string, months []string) ([]PoolEntry, LoadStats, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, LoadStats{}, fmt.Errorf("%w: %s", ErrMissingEntriesFile, path)
		}
		return nil, LoadStats{}, fmt.Errorf("open entries: %w", err)
	}
	defer file.Close()
	return Read(file, months, nil)
}

type columns struct {
	name         int
	picks        [PickCount]int
	distributors [DistributorGuessCount]int
	months       map[string]int
}

// Read parses entries from r. Columns are located by header name, ignoring
// case and surrounding whitespace. Rows without a name are skipped.
func Read(r io.Reader, months []string, logger *slog.Logger) ([]PoolEntry, LoadStats, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	var stats LoadStats
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, stats, ErrMissingNameColumn
	}
	if err != nil {
		return nil, stats, fmt.Errorf("read entries header: %w", err)
	}
	cols, err := locateColumns(header, months)
	if err != nil {
		return nil, stats, err
	}

	var out []PoolEntry
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		stats.Rows++
		if err != nil {
			stats.Skipped++
			logger.Debug("entries row skipped", logging.Int("row", stats.Rows), logging.Error(err))
			continue
		}
		entry := cols.entry(record)
		if entry.Name == "" {
			stats.Skipped++
			logger.Debug("entries row skipped", logging.Int("row", stats.Rows), logging.String("reason", "empty name"))
			continue
		}
		out = append(out, entry)
	}
	return out, stats, nil
}

func locateColumns(header []string, months []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		key := strings.ToLower(strings.Join(strings.Fields(h), " "))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}
	lookup := func(name string) int {
		if i, ok := index[strings.ToLower(name)]; ok {
			return i
		}
		return -1
	}

	cols := columns{name: lookup("name"), months: make(map[string]int, len(months))}
	if cols.name < 0 {
		return columns{}, ErrMissingNameColumn
	}
	for i := range cols.picks {
		cols.picks[i] = lookup("pick " + strconv.Itoa(i+1))
	}
	for i := range cols.distributors {
		cols.distributors[i] = lookup("distributor " + strconv.Itoa(i+1))
	}
	for _, month := range months {
		cols.months[month] = lookup(strings.TrimSpace(month))
	}
	return cols, nil
}

func (c columns) entry(record []string) PoolEntry {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	entry := PoolEntry{
		Name:               field(c.name),
		MoviePicks:         make([]string, PickCount),
		MonthlyGuesses:     make(map[string]string, len(c.months)),
		DistributorGuesses: make([]string, DistributorGuessCount),
	}
	for i, col := range c.picks {
		entry.MoviePicks[i] = field(col)
	}
	for i, col := range c.distributors {
		entry.DistributorGuesses[i] = field(col)
	}
	for month, col := range c.months {
		entry.MonthlyGuesses[month] = field(col)
	}
	return entry
}

// FileLoader serves entries from a fixed path.
type FileLoader struct {
	Path   string
	Months []string
	Logger *slog.Logger
}

// LoadPoolEntries implements the standings entries collaborator.
func (l FileLoader) LoadPoolEntries(context.Context) ([]PoolEntry, error) {
	file, err := os.Open(l.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingEntriesFile, l.Path)
		}
		return nil, fmt.Errorf("open entries: %w", err)
	}
	defer file.Close()

	loaded, stats, err := Read(file, l.Months, l.Logger)
	if err != nil {
		return nil, err
	}
	if stats.Skipped > 0 && l.Logger != nil {
		logging.WarnWithContext(l.Logger, "entries rows skipped", "entries_rows_skipped",
			logging.Int("skipped", stats.Skipped),
			logging.Int("rows", stats.Rows),
			logging.String(logging.FieldErrorHint, "fill in the Name column for every entry"),
			logging.String(logging.FieldImpact, "skipped rows are not scored"),
		)
	}
	return loaded, nil
}
