package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"summerpool/internal/ranking"
	"summerpool/internal/scoring"
	"summerpool/internal/standings"
)

func sampleStandings() *standings.Standings {
	return &standings.Standings{
		RunID:       "run-1",
		GeneratedAt: time.Date(2025, time.August, 1, 12, 0, 0, 0, time.UTC),
		Movies: []ranking.RankedMovie{
			{Title: "Lilo & Stitch", Gross: 423_778_855},
			{Title: "Superman", Gross: 354_184_465},
		},
		Distributors: []ranking.RankedDistributor{
			{Name: "Walt Disney", TotalGross: 600_000_000, Rank: 1},
			{Name: "Warner Bros.", TotalGross: 354_184_465, Rank: 2},
		},
		Results: []scoring.Result{
			{Name: "Alex", Points: 16, MoviePoints: 5, MonthlyPoints: 3, DistributorPoints: 8},
			{Name: "Blair <3", Points: 16, MoviePoints: 8, DistributorPoints: 8},
			{Name: "Casey", Points: 2, MoviePoints: 2},
		},
		Months:         []string{"May", "August"},
		MonthlyWinners: map[string]string{"May": "Lilo & Stitch", "August": ""},
	}
}

func TestFormatDollars(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{1234, "$1,234"},
		{423_778_855, "$423,778,855"},
		{-5000, "-$5,000"},
	}
	for _, tt := range tests {
		if got := FormatDollars(tt.in); got != tt.want {
			t.Fatalf("FormatDollars(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleStandings()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := strings.Join([]string{
		"# Top 2 Summer Movies,Domestic Gross",
		`1. Lilo & Stitch,"$423,778,855"`,
		`2. Superman,"$354,184,465"`,
		"",
		"# Monthly Winners,Winner",
		"May,Lilo & Stitch",
		"August,TBD",
		"",
		"# Top Summer Distributors,Summer Gross",
		`1. Walt Disney,"$600,000,000"`,
		`2. Warner Bros.,"$354,184,465"`,
		"",
		"Rank,Name,Score",
		"1,Alex,16",
		"1,Blair <3,16",
		"3,Casey,2",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Fatalf("csv mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteCSVRejectsNil(t *testing.T) {
	if err := WriteCSV(&bytes.Buffer{}, nil); err == nil {
		t.Fatal("expected error for nil standings")
	}
}

func TestWriteHTMLEscapesAndListsSections(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, sampleStandings()); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	page := buf.String()
	for _, want := range []string{
		"Current Top 2 Summer Movies",
		"Lilo &amp; Stitch",
		"$423,778,855",
		"<td>August</td><td>TBD</td>",
		"<td class=\"rank-col\">1</td><td>Walt Disney</td>",
		"Blair &lt;3",
		"<td class=\"rank-col\">3</td><td>Casey</td>",
		"Fri, 01 Aug 2025 12:00:00 UTC",
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q", want)
		}
	}
	if strings.Contains(page, "Blair <3") {
		t.Fatal("participant name not escaped")
	}
}

func TestExportWritesBothFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public")
	files, err := Export(dir, sampleStandings())
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	for _, path := range []string{files.CSV, files.HTML} {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat %s: %v", path, err)
		}
		if info.Size() == 0 {
			t.Fatalf("%s is empty", path)
		}
	}
	if filepath.Base(files.CSV) != CSVName || filepath.Base(files.HTML) != HTMLName {
		t.Fatalf("unexpected names %+v", files)
	}
}
