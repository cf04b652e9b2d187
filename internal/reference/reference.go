// Package reference loads the curated list of summer titles that limits which
// box office rows take part in the pool.
package reference

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"summerpool/internal/normalize"
)

const utf8BOM = "\ufeff"

// Load reads the reference list from a CSV file. Only the first column of each
// row is used.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference list: %w", err)
	}
	defer file.Close()
	return Read(file)
}

// Read parses reference titles in file order. A leading byte order mark is
// dropped, trailing "(...)" annotations are stripped, empty rows are skipped,
// and a first row reading "movie" or "title" is treated as a header.
func Read(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var titles []string
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read reference list: %w", err)
		}
		if len(record) == 0 {
			continue
		}
		raw := record[0]
		if first {
			raw = strings.TrimPrefix(raw, utf8BOM)
		}
		title := normalize.StripAnnotation(raw)
		if first {
			first = false
			switch strings.ToLower(title) {
			case "movie", "title":
				continue
			}
		}
		if title == "" {
			continue
		}
		titles = append(titles, title)
	}
	return titles, nil
}

// FileLoader serves the reference list from a fixed path.
type FileLoader struct {
	Path string
}

// LoadReferenceTitles implements the standings reference collaborator.
func (l FileLoader) LoadReferenceTitles(context.Context) ([]string, error) {
	return Load(l.Path)
}
