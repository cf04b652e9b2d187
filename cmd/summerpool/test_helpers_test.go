package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"summerpool/internal/config"
	"summerpool/internal/testsupport"
)

const testReferenceCSV = "\ufeffTitle\nLilo & Stitch (Wide)\nSuperman\nHow to Train Your Dragon\n"

const testEntriesCSV = "Name,Pick 1,Pick 2,Pick 3,Pick 4,Pick 5,Pick 6,Pick 7,Pick 8,Pick 9,Pick 10,May,June,Distributor 1,Distributor 2,Distributor 3\n" +
	"Alex,Lilo & Stitch,Superman,,,,,,,,,Lilo & Stitch,Elio,Disney,Universal,\n" +
	"Blair,Superman,,,,,,,,,,Superman,,Sony,,\n"

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

// setupCLITestEnv writes a pool, chart snapshots and a config file into a temp
// tree so commands run without network access.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t, testsupport.WithMonthlyWinners(
		[]string{"May", "June"},
		map[string]string{"May": "Lilo & Stitch", "June": ""},
	))
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))

	cfg.Source.GrossFile = testsupport.CopyFixture(t,
		filepath.Join("..", "..", "internal", "boxoffice", "testdata", "cumulative.html"),
		filepath.Join(base, "snapshots", "cumulative.html"))
	cfg.Source.DistributorsFile = testsupport.CopyFixture(t,
		filepath.Join("..", "..", "internal", "boxoffice", "testdata", "top-grossing.html"),
		filepath.Join(base, "snapshots", "top-grossing.html"))
	cfg.Metrics.TextfilePath = filepath.Join(base, "metrics", "summerpool.prom")

	testsupport.WriteFile(t, cfg.Paths.ReferenceCSV, testReferenceCSV)
	testsupport.WriteFile(t, cfg.Paths.EntriesCSV, testEntriesCSV)

	configPath := filepath.Join(base, "summerpool.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
