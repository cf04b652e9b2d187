package normalize

import (
	"regexp"
	"strings"
)

var distributorSeparator = regexp.MustCompile(`(?i)\s*(?:/|&|,|\band\b)\s*`)

// SplitDistributors breaks a raw distributor credit into its individual
// parts. Runs of separators collapse and empty parts are dropped, so
// "Sony / Columbia" and "Sony,, & Columbia" both yield two parts.
func SplitDistributors(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	pieces := distributorSeparator.Split(raw, -1)
	parts := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		parts = append(parts, piece)
	}
	return parts
}
