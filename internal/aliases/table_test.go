package aliases

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDistributorDefaults(t *testing.T) {
	table := Default()
	cases := map[string]string{
		"Walt Disney Studios Motion Pictures": "Walt Disney",
		"  Buena Vista ":                      "Walt Disney",
		"Warner Brothers":                     "Warner Bros.",
		"Focus Features":                      "Universal",
		"Sony Pictures Entertainment (SPE)":   "Sony Pictures",
		"Paramount":                           "Paramount Pictures",
		"Lions Gate Films":                    "Lionsgate",
		"A24 Distribution":                    "A24",
		"Neon":                                "Neon",
		"":                                    Unknown,
		"   ":                                 Unknown,
	}
	for raw, want := range cases {
		if got := table.Distributor(raw); got != want {
			t.Fatalf("Distributor(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestDistributorIsIdempotentOnCanonicalNames(t *testing.T) {
	table := Default()
	for _, canonical := range defaultDistributors {
		if got := table.Distributor(canonical); got != canonical {
			t.Fatalf("canonical %q mapped to %q", canonical, got)
		}
	}
}

func TestNilTableUsesDefaults(t *testing.T) {
	var table *Table
	if got := table.Distributor("Disney"); got != "Walt Disney" {
		t.Fatalf("nil table Distributor = %q", got)
	}
	if _, ok := table.Title("anything"); ok {
		t.Fatal("nil table should have no title aliases")
	}
}

func TestDistributorKey(t *testing.T) {
	table := Default()
	if got := table.DistributorKey("Warner Bros"); got != "warnerbros" {
		t.Fatalf("DistributorKey = %q", got)
	}
	if got := table.DistributorKey(""); got != "" {
		t.Fatalf("empty guess must have empty key, got %q", got)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aliases.toml")
	data := "\xEF\xBB\xBF[distributors]\n\"Neon Rated\" = \"Neon\"\n\"Disney\" = \"Disney\"\n\n[titles]\n\"MI 8\" = \"Mission: Impossible - The Final Reckoning\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write aliases: %v", err)
	}
	table, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := table.Distributor("Neon Rated"); got != "Neon" {
		t.Fatalf("expected file alias, got %q", got)
	}
	if got := table.Distributor("Disney"); got != "Disney" {
		t.Fatalf("expected file to override default, got %q", got)
	}
	if got := table.Distributor("Buena Vista"); got != "Walt Disney" {
		t.Fatalf("expected default to survive, got %q", got)
	}
	canonical, ok := table.Title("mi-8")
	if !ok || canonical != "Mission: Impossible - The Final Reckoning" {
		t.Fatalf("unexpected title alias %q %v", canonical, ok)
	}
	if got := table.TitleKey("M.I. 8"); got != "missionimpossiblethefinalreckoning" {
		t.Fatalf("TitleKey = %q", got)
	}
}

func TestLoadMissingOrEmptyFileYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	table, err := Load(filepath.Join(dir, "absent.toml"), nil)
	if err != nil {
		t.Fatalf("Load missing: %v", err)
	}
	if d, _ := table.Len(); d != len(defaultDistributors) {
		t.Fatalf("expected defaults, got %d entries", d)
	}

	empty := filepath.Join(dir, "empty.toml")
	if err := os.WriteFile(empty, []byte("\xEF\xBB\xBF \n"), 0o644); err != nil {
		t.Fatalf("write empty: %v", err)
	}
	if _, err := Load(empty, nil); err != nil {
		t.Fatalf("Load empty: %v", err)
	}
}

func TestLoadRejectsInvalidToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[distributors\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path, nil); err == nil {
		t.Fatal("expected parse error")
	}
}
