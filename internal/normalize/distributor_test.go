package normalize_test

import (
	"slices"
	"testing"

	"summerpool/internal/normalize"
)

func TestSplitDistributors(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"Universal", []string{"Universal"}},
		{"Sony / Columbia", []string{"Sony", "Columbia"}},
		{"Warner Bros. & Legendary, A24", []string{"Warner Bros.", "Legendary", "A24"}},
		{"Disney AND Pixar", []string{"Disney", "Pixar"}},
		{"Sony,, & Columbia", []string{"Sony", "Columbia"}},
		{"/Neon/", []string{"Neon"}},
		{"Roadside Attractions", []string{"Roadside Attractions"}},
	}
	for _, tc := range cases {
		got := normalize.SplitDistributors(tc.raw)
		if !slices.Equal(got, tc.want) {
			t.Fatalf("SplitDistributors(%q) = %#v, want %#v", tc.raw, got, tc.want)
		}
	}
}

func TestSplitDistributorsPartsAreTrimmedAndNonEmpty(t *testing.T) {
	for _, raw := range []string{" a / b ", "x&&y", ", ,", "Lions Gate Films and  Summit"} {
		for _, part := range normalize.SplitDistributors(raw) {
			if part == "" {
				t.Fatalf("empty part from %q", raw)
			}
			if part[0] == ' ' || part[len(part)-1] == ' ' {
				t.Fatalf("untrimmed part %q from %q", part, raw)
			}
		}
	}
}
