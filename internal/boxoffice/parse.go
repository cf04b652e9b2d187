package boxoffice

import (
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

var releaseDateLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02",
	"1/2/2006",
}

var yearGrossHeader = regexp.MustCompile(`^\d{4}gross$`)

// ParseGrossTable reads the cumulative chart: the first table whose headers
// include "Rank" and "Movie". The title comes from the "Movie" column and the
// gross from the first column naming a gross, falling back to the chart's
// usual positions (1 and 3).
func ParseGrossTable(r io.Reader) ([]GrossRow, ParseStats, error) {
	var stats ParseStats
	tables, err := extractTables(r)
	if err != nil {
		return nil, stats, fmt.Errorf("parse html: %w", err)
	}
	idx := slices.IndexFunc(tables, func(t htmlTable) bool {
		return slices.Contains(t.headers, "Rank") && slices.Contains(t.headers, "Movie")
	})
	if idx < 0 {
		return nil, stats, fmt.Errorf("cumulative chart: %w", ErrTableNotFound)
	}
	table := tables[idx]
	titleCol := slices.Index(table.headers, "Movie")
	if titleCol < 0 {
		titleCol = 1
	}
	grossCol := slices.IndexFunc(table.headers, func(h string) bool {
		return strings.Contains(normalizeHeader(h), "gross")
	})
	if grossCol < 0 {
		grossCol = 3
	}

	rows := make([]GrossRow, 0, len(table.rows))
	for _, row := range table.rows {
		stats.Rows++
		title := cell(row, titleCol)
		if title == "" || len(row) <= grossCol {
			stats.Skipped++
			continue
		}
		gross, ok := ParseDollars(cell(row, grossCol))
		if !ok {
			stats.BadAmounts++
		}
		rows = append(rows, GrossRow{Title: title, Gross: gross})
	}
	return rows, stats, nil
}

type distributorColumns struct {
	movie, release, distributor, gross int
}

// ParseDistributorTable reads the yearly chart: the first table whose
// normalized headers mention a movie, a release date, a distributor and a gross.
func ParseDistributorTable(r io.Reader) ([]MovieRecord, ParseStats, error) {
	var stats ParseStats
	tables, err := extractTables(r)
	if err != nil {
		return nil, stats, fmt.Errorf("parse html: %w", err)
	}
	var (
		table htmlTable
		cols  distributorColumns
		found bool
	)
	for _, candidate := range tables {
		if c, ok := locateDistributorColumns(candidate.headers); ok {
			table, cols, found = candidate, c, true
			break
		}
	}
	if !found {
		return nil, stats, fmt.Errorf("yearly chart: %w", ErrTableNotFound)
	}

	records := make([]MovieRecord, 0, len(table.rows))
	for _, row := range table.rows {
		stats.Rows++
		title := cell(row, cols.movie)
		if title == "" {
			stats.Skipped++
			continue
		}
		record := MovieRecord{
			Title:          title,
			DistributorRaw: cell(row, cols.distributor),
		}
		if released, ok := ParseReleaseDate(cell(row, cols.release)); ok {
			record.ReleaseDate = released
		} else {
			stats.BadDates++
		}
		gross, ok := ParseDollars(cell(row, cols.gross))
		if !ok {
			stats.BadAmounts++
		}
		record.Gross = gross
		records = append(records, record)
	}
	return records, stats, nil
}

func locateDistributorColumns(headers []string) (distributorColumns, bool) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = normalizeHeader(h)
	}
	containing := func(fragment string) int {
		return slices.IndexFunc(normalized, func(h string) bool { return strings.Contains(h, fragment) })
	}
	cols := distributorColumns{
		movie:       containing("movie"),
		release:     containing("release"),
		distributor: containing("distributor"),
		gross:       slices.IndexFunc(normalized, yearGrossHeader.MatchString),
	}
	if cols.gross < 0 {
		cols.gross = slices.Index(normalized, "gross")
	}
	if cols.gross < 0 {
		cols.gross = containing("gross")
	}
	if cols.release < 0 {
		cols.release = slices.Index(normalized, "openingdate")
	}
	if cols.movie < 0 || cols.release < 0 || cols.distributor < 0 || cols.gross < 0 {
		return distributorColumns{}, false
	}
	return cols, true
}

// ParseDollars keeps the whole-dollar digits of a currency string; cents after
// the first '.' are dropped. An empty result counts as zero and is reported as
// not ok.
func ParseDollars(value string) (int64, bool) {
	if whole, _, found := strings.Cut(value, "."); found {
		value = whole
	}
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	amount, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// ParseReleaseDate accepts the chart's date spellings and returns a UTC date.
func ParseReleaseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range releaseDateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}
	return time.Time{}, false
}
