package boxoffice_test

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"summerpool/internal/boxoffice"
)

func openFixture(t *testing.T, name string) *os.File {
	t.Helper()
	f, err := os.Open("testdata/" + name)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestParseGrossTable(t *testing.T) {
	rows, stats, err := boxoffice.ParseGrossTable(openFixture(t, "cumulative.html"))
	if err != nil {
		t.Fatalf("ParseGrossTable: %v", err)
	}
	want := []boxoffice.GrossRow{
		{Title: "Lilo & Stitch", Gross: 423778855},
		{Title: "Superman", Gross: 354184465},
		{Title: "A Minecraft Movie", Gross: 423949195},
		{Title: "Jurassic World: Rebirth", Gross: 0},
	}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d: %+v", len(want), len(rows), rows)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d: got %+v want %+v", i, rows[i], want[i])
		}
	}
	if stats.Rows != 6 || stats.Skipped != 2 || stats.BadAmounts != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestParseGrossTableDropsCents(t *testing.T) {
	page := `<table>
<tr><th>Rank</th><th>Movie</th><th>Release Date</th><th>Domestic Gross</th></tr>
<tr><td>1</td><td>Elio</td><td>Jun 20, 2025</td><td>$1,234.56</td></tr>
</table>`
	rows, _, err := boxoffice.ParseGrossTable(strings.NewReader(page))
	if err != nil {
		t.Fatalf("ParseGrossTable: %v", err)
	}
	if len(rows) != 1 || rows[0].Gross != 1234 {
		t.Fatalf("expected whole dollars, got %+v", rows)
	}
}

func TestParseGrossTableMissing(t *testing.T) {
	_, _, err := boxoffice.ParseGrossTable(strings.NewReader("<table><tr><th>Name</th></tr></table>"))
	if !errors.Is(err, boxoffice.ErrTableNotFound) {
		t.Fatalf("expected ErrTableNotFound, got %v", err)
	}
}

func TestParseDistributorTable(t *testing.T) {
	records, stats, err := boxoffice.ParseDistributorTable(openFixture(t, "top-grossing.html"))
	if err != nil {
		t.Fatalf("ParseDistributorTable: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d: %+v", len(records), records)
	}
	first := records[0]
	if first.Title != "Lilo & Stitch" || first.Gross != 423778855 || first.DistributorRaw != "Walt Disney" {
		t.Fatalf("unexpected first record %+v", first)
	}
	if !first.ReleaseDate.Equal(time.Date(2025, 5, 23, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected release date %v", first.ReleaseDate)
	}
	if !records[1].ReleaseDate.Equal(time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("long month name not parsed: %v", records[1].ReleaseDate)
	}
	if records[2].HasReleaseDate() {
		t.Fatalf("TBD should leave release date empty, got %v", records[2].ReleaseDate)
	}
	if records[2].DistributorRaw != "Warner Bros. / Apple" {
		t.Fatalf("distributor should stay raw, got %q", records[2].DistributorRaw)
	}
	if records[3].Gross != 0 || !records[3].HasReleaseDate() {
		t.Fatalf("unexpected fourth record %+v", records[3])
	}
	if stats.Rows != 5 || stats.Skipped != 1 || stats.BadDates != 1 || stats.BadAmounts != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestParseDistributorTableRequiresAllColumns(t *testing.T) {
	page := `<table><tr><th>Movie</th><th>Release Date</th><th>Gross</th></tr><tr><td>X</td><td>May 1, 2025</td><td>$1</td></tr></table>`
	if _, _, err := boxoffice.ParseDistributorTable(strings.NewReader(page)); !errors.Is(err, boxoffice.ErrTableNotFound) {
		t.Fatalf("expected ErrTableNotFound, got %v", err)
	}
}

func TestParseDollars(t *testing.T) {
	cases := []struct {
		in     string
		want   int64
		wantOK bool
	}{
		{"$1,234,567", 1234567, true},
		{"  $0 ", 0, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"$12.50", 12, true},
		{"$1,234.56", 1234, true},
		{".99", 0, false},
	}
	for _, tc := range cases {
		got, ok := boxoffice.ParseDollars(tc.in)
		if got != tc.want || ok != tc.wantOK {
			t.Fatalf("ParseDollars(%q) = %d,%v want %d,%v", tc.in, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestParseReleaseDate(t *testing.T) {
	want := time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"Jul 4, 2025", "July 4, 2025", "2025-07-04", "7/4/2025", " Jul 4, 2025 "} {
		got, ok := boxoffice.ParseReleaseDate(in)
		if !ok || !got.Equal(want) {
			t.Fatalf("ParseReleaseDate(%q) = %v,%v", in, got, ok)
		}
	}
	for _, in := range []string{"", "TBD", "Summer 2025"} {
		if _, ok := boxoffice.ParseReleaseDate(in); ok {
			t.Fatalf("expected %q to be unparseable", in)
		}
	}
}
