package aliases

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

type fileFormat struct {
	Distributors map[string]string `toml:"distributors"`
	Titles       map[string]string `toml:"titles"`
}

// Load reads an operator-maintained alias file and layers it over the
// defaults. A blank path, a missing file or an empty file yields the defaults.
func Load(path string, logger *slog.Logger) (*Table, error) {
	table := Default()
	path = strings.TrimSpace(path)
	if path == "" {
		return table, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return table, nil
		}
		return nil, fmt.Errorf("read aliases: %w", err)
	}
	parsed, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse aliases %s: %w", path, err)
	}
	table.merge(parsed.Distributors, parsed.Titles)
	if logger != nil {
		logger.Info("loaded alias overrides",
			slog.String("path", path),
			slog.Int("distributors", len(parsed.Distributors)),
			slog.Int("titles", len(parsed.Titles)),
		)
	}
	return table, nil
}

func parse(data []byte) (fileFormat, error) {
	var parsed fileFormat
	data = bytes.TrimPrefix(data, []byte("\xEF\xBB\xBF"))
	if len(bytes.TrimSpace(data)) == 0 {
		return parsed, nil
	}
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return fileFormat{}, err
	}
	return parsed, nil
}
