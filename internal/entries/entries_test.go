package entries_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"summerpool/internal/entries"
)

var months = []string{"May", "June", "July", "August"}

const sample = "\ufeffName,Pick 1,Pick 2,Pick 3,Pick 4,Pick 5,Pick 6,Pick 7,Pick 8,Pick 9,Pick 10,May,June,July,August,Distributor 1,Distributor 2,Distributor 3\n" +
	"Alex, Lilo & Stitch ,Superman,Jurassic World: Rebirth,,,,,,,Weapons,Lilo & Stitch,Elio,Superman,Weapons,Disney,Universal,Warner Bros\n" +
	",Superman,,,,,,,,,,,,,,,,\n" +
	"Blair,Superman\n"

func TestReadParsesColumnsByHeader(t *testing.T) {
	got, stats, err := entries.Read(strings.NewReader(sample), months, nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if stats.Rows != 3 || stats.Skipped != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	alex := got[0]
	if alex.Name != "Alex" || alex.MoviePicks[0] != "Lilo & Stitch" || alex.MoviePicks[9] != "Weapons" {
		t.Fatalf("unexpected picks %+v", alex)
	}
	if alex.MonthlyGuesses["June"] != "Elio" || alex.MonthlyGuesses["August"] != "Weapons" {
		t.Fatalf("unexpected monthly guesses %v", alex.MonthlyGuesses)
	}
	if alex.DistributorGuesses[2] != "Warner Bros" {
		t.Fatalf("unexpected distributor guesses %v", alex.DistributorGuesses)
	}

	blair := got[1]
	if len(blair.MoviePicks) != entries.PickCount || blair.MoviePicks[1] != "" {
		t.Fatalf("short row should pad picks, got %#v", blair.MoviePicks)
	}
	if len(blair.DistributorGuesses) != entries.DistributorGuessCount || blair.MonthlyGuesses["May"] != "" {
		t.Fatalf("short row should pad guesses, got %+v", blair)
	}
}

func TestReadHeaderIsCaseInsensitiveAndOptionalColumns(t *testing.T) {
	input := " name ,PICK 1\nCasey,Elio\n"
	got, _, err := entries.Read(strings.NewReader(input), months, nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 1 || got[0].MoviePicks[0] != "Elio" || got[0].MonthlyGuesses["July"] != "" {
		t.Fatalf("unexpected entries %+v", got)
	}
}

func TestReadRequiresNameColumn(t *testing.T) {
	for _, input := range []string{"", "Pick 1,Pick 2\nx,y\n"} {
		if _, _, err := entries.Read(strings.NewReader(input), months, nil); !errors.Is(err, entries.ErrMissingNameColumn) {
			t.Fatalf("expected ErrMissingNameColumn for %q, got %v", input, err)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := entries.Load(filepath.Join(t.TempDir(), "entries.csv"), months)
	if !errors.Is(err, entries.ErrMissingEntriesFile) {
		t.Fatalf("expected ErrMissingEntriesFile, got %v", err)
	}
	_, err = entries.FileLoader{Path: filepath.Join(t.TempDir(), "nope.csv")}.LoadPoolEntries(context.Background())
	if !errors.Is(err, entries.ErrMissingEntriesFile) {
		t.Fatalf("expected ErrMissingEntriesFile from loader, got %v", err)
	}
}

func TestFileLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.csv")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := entries.FileLoader{Path: path, Months: months}.LoadPoolEntries(context.Background())
	if err != nil {
		t.Fatalf("LoadPoolEntries: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
}
