package aliases

import (
	"maps"
	"strings"

	"summerpool/internal/normalize"
)

// Table maps distributor and title variants to their canonical spelling.
// Distributor variants match exactly after trimming; title variants match by
// normalized key. A nil *Table behaves like Default().
type Table struct {
	distributors map[string]string
	titles       map[string]string
}

// Default returns the built-in distributor table with no title aliases.
func Default() *Table {
	return &Table{
		distributors: maps.Clone(defaultDistributors),
		titles:       map[string]string{},
	}
}

// New builds a table from explicit maps layered over the defaults.
func New(distributors, titles map[string]string) *Table {
	t := Default()
	t.merge(distributors, titles)
	return t
}

func (t *Table) merge(distributors, titles map[string]string) {
	for variant, canonical := range distributors {
		variant = strings.TrimSpace(variant)
		canonical = strings.TrimSpace(canonical)
		if variant == "" || canonical == "" {
			continue
		}
		t.distributors[variant] = canonical
	}
	for variant, canonical := range titles {
		key := normalize.Key(variant)
		canonical = strings.TrimSpace(canonical)
		if key == "" || canonical == "" {
			continue
		}
		t.titles[key] = canonical
	}
}

func (t *Table) resolve() *Table {
	if t == nil {
		return Default()
	}
	return t
}

// Distributor returns the canonical name for one distributor credit part.
// Empty input maps to Unknown; unmapped names are returned trimmed.
func (t *Table) Distributor(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return Unknown
	}
	if canonical, ok := t.resolve().distributors[name]; ok {
		return canonical
	}
	return name
}

// DistributorKey returns the comparison key of the canonical distributor name.
// Empty input yields an empty key so it never matches anything.
func (t *Table) DistributorKey(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return normalize.Key(t.Distributor(raw))
}

// Title resolves a title alias. The second result is false when no alias is
// registered for the title's key.
func (t *Table) Title(title string) (string, bool) {
	key := normalize.Key(title)
	if key == "" {
		return "", false
	}
	canonical, ok := t.resolve().titles[key]
	return canonical, ok
}

// TitleKey returns the comparison key for a title after alias resolution.
func (t *Table) TitleKey(title string) string {
	if canonical, ok := t.Title(title); ok {
		return normalize.Key(canonical)
	}
	return normalize.Key(title)
}

// Len reports the number of distributor and title aliases.
func (t *Table) Len() (distributors, titles int) {
	r := t.resolve()
	return len(r.distributors), len(r.titles)
}
