package report

import (
	"fmt"
	"io"
	"path/filepath"

	"summerpool/internal/fileutil"
	"summerpool/internal/standings"
)

const (
	// CSVName is the leaderboard CSV file written by Export.
	CSVName = "leaderboard.csv"
	// HTMLName is the leaderboard page written by Export.
	HTMLName = "leaderboard.html"
)

// Files lists the paths produced by an export.
type Files struct {
	CSV  string
	HTML string
}

// Export writes both leaderboards into dir, replacing earlier exports atomically.
func Export(dir string, s *standings.Standings) (Files, error) {
	files := Files{
		CSV:  filepath.Join(dir, CSVName),
		HTML: filepath.Join(dir, HTMLName),
	}
	if err := fileutil.WriteAtomic(files.CSV, 0o644, func(w io.Writer) error { return WriteCSV(w, s) }); err != nil {
		return Files{}, fmt.Errorf("export %s: %w", CSVName, err)
	}
	if err := fileutil.WriteAtomic(files.HTML, 0o644, func(w io.Writer) error { return WriteHTML(w, s) }); err != nil {
		return Files{}, fmt.Errorf("export %s: %w", HTMLName, err)
	}
	return files, nil
}
