package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"summerpool/internal/report"
	"summerpool/internal/testsupport"
)

func TestStandingsCommandScoresExportsAndRecords(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, []string{"standings"}, env.configPath)
	if err != nil {
		t.Fatalf("standings: %v", err)
	}
	requireContains(t, stdout, "Pool Leaderboard")
	requireContains(t, stdout, "Lilo & Stitch")
	requireContains(t, stdout, "Walt Disney")
	requireContains(t, stdout, "Saved ")

	csvData, err := os.ReadFile(filepath.Join(env.cfg.Paths.OutputDir, report.CSVName))
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	requireContains(t, string(csvData), "1,Alex,16")
	requireContains(t, string(csvData), "2,Blair,1")
	requireContains(t, string(csvData), "June,TBD")

	if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, report.HTMLName)); err != nil {
		t.Fatalf("expected html leaderboard: %v", err)
	}
	metrics, err := os.ReadFile(env.cfg.Metrics.TextfilePath)
	if err != nil {
		t.Fatalf("read metrics textfile: %v", err)
	}
	requireContains(t, string(metrics), "summerpool_leader_points 16")

	store := testsupport.MustOpenHistory(t, env.cfg)
	runs, err := store.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 || runs[0].Leader != "Alex" || runs[0].LeaderPoints != 16 {
		t.Fatalf("unexpected recorded runs %+v", runs)
	}
}

func TestStandingsCommandJSONReportsMovement(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"standings", "--no-export"}, env.configPath); err != nil {
		t.Fatalf("first run: %v", err)
	}
	stdout, _, err := runCLI(t, []string{"standings", "--no-export", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	var view standingsView
	if err := json.Unmarshal([]byte(stdout), &view); err != nil {
		t.Fatalf("decode json: %v\n%s", err, stdout)
	}
	if len(view.Movies) != 2 || view.Movies[0].Title != "Lilo & Stitch" || view.Movies[1].Title != "Superman" {
		t.Fatalf("unexpected movies %+v", view.Movies)
	}
	if len(view.Leaderboard) != 2 || view.Leaderboard[0].Name != "Alex" || view.Leaderboard[0].Points != 16 {
		t.Fatalf("unexpected leaderboard %+v", view.Leaderboard)
	}
	if view.Leaderboard[0].Movement == nil || *view.Leaderboard[0].Movement != 0 {
		t.Fatalf("expected unchanged movement, got %+v", view.Leaderboard[0].Movement)
	}
	if len(view.Exported) != 0 {
		t.Fatalf("expected no exported files, got %v", view.Exported)
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, report.CSVName)); !os.IsNotExist(err) {
		t.Fatalf("--no-export should not write the csv, stat err=%v", err)
	}
}

func TestStandingsCommandFailsPreflightWithoutEntries(t *testing.T) {
	env := setupCLITestEnv(t)
	if err := os.Remove(env.cfg.Paths.EntriesCSV); err != nil {
		t.Fatalf("remove entries: %v", err)
	}

	if _, _, err := runCLI(t, []string{"standings"}, env.configPath); err == nil {
		t.Fatal("expected standings to fail without an entries file")
	}
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, report.CSVName)); !os.IsNotExist(err) {
		t.Fatalf("failed run should not export, stat err=%v", err)
	}
	metrics, err := os.ReadFile(env.cfg.Metrics.TextfilePath)
	if err != nil {
		t.Fatalf("read metrics textfile: %v", err)
	}
	requireContains(t, string(metrics), "summerpool_last_run_success 0")
}

func TestMoviesAndDistributorsCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, []string{"movies", "--json", "--limit", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("movies: %v", err)
	}
	var movies []movieView
	if err := json.Unmarshal([]byte(stdout), &movies); err != nil {
		t.Fatalf("decode movies: %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "Lilo & Stitch" || movies[0].Gross != 423_778_855 {
		t.Fatalf("unexpected movies %+v", movies)
	}

	stdout, _, err = runCLI(t, []string{"distributors", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("distributors: %v", err)
	}
	var dists []distributorView
	if err := json.Unmarshal([]byte(stdout), &dists); err != nil {
		t.Fatalf("decode distributors: %v", err)
	}
	if len(dists) != 2 || dists[0].Name != "Walt Disney" || dists[1].Name != "Universal" || dists[1].Rank != 2 {
		t.Fatalf("unexpected distributors %+v", dists)
	}

	stdout, _, err = runCLI(t, []string{"distributors"}, env.configPath)
	if err != nil {
		t.Fatalf("distributors table: %v", err)
	}
	requireContains(t, stdout, "$423,778,855")
	requireContains(t, stdout, "May 1 to Aug 31, 2025")
}

func TestHistoryCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, []string{"history", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, stdout, "No runs recorded")

	for range 2 {
		if _, _, err := runCLI(t, []string{"standings", "--no-export"}, env.configPath); err != nil {
			t.Fatalf("standings: %v", err)
		}
	}

	stdout, _, err = runCLI(t, []string{"history", "list", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history list --json: %v", err)
	}
	var runs []runSummaryView
	if err := json.Unmarshal([]byte(stdout), &runs); err != nil {
		t.Fatalf("decode runs: %v", err)
	}
	if len(runs) != 2 || !runs[0].GeneratedAt.After(runs[1].GeneratedAt) {
		t.Fatalf("expected two runs newest first, got %+v", runs)
	}

	stdout, _, err = runCLI(t, []string{"history", "show", runs[1].ID}, env.configPath)
	if err != nil {
		t.Fatalf("history show: %v", err)
	}
	requireContains(t, stdout, runs[1].ID)
	requireContains(t, stdout, "Alex")

	if _, _, err := runCLI(t, []string{"history", "show", "missing"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown run")
	}

	stdout, _, err = runCLI(t, []string{"history", "prune", "--keep", "1"}, env.configPath)
	if err != nil {
		t.Fatalf("history prune: %v", err)
	}
	requireContains(t, stdout, "Removed 1 run(s)")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "fresh", "config.toml")

	stdout, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, stdout, target)
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	stdout, _, err = runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, stdout, env.configPath)
	requireContains(t, stdout, "2025-05-01")
	requireContains(t, stdout, "Configuration valid")
}

func TestConfigValidateRejectsUnknownKeys(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, env.configPath, "[paths]\nunknown_key = 1\n")

	if _, _, err := runCLI(t, []string{"config", "validate"}, env.configPath); err == nil {
		t.Fatal("expected unknown key to fail validation")
	}
}

func TestDoctorOffline(t *testing.T) {
	env := setupCLITestEnv(t)

	stdout, _, err := runCLI(t, []string{"doctor", "--offline"}, env.configPath)
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, stdout)
	}
	requireContains(t, stdout, "== Preflight ==")
	requireContains(t, stdout, "[OK]")
	requireContains(t, stdout, "all checks passed")

	if err := os.Remove(env.cfg.Paths.ReferenceCSV); err != nil {
		t.Fatalf("remove reference: %v", err)
	}
	stdout, _, err = runCLI(t, []string{"doctor", "--offline"}, env.configPath)
	if err == nil {
		t.Fatal("expected doctor to fail without a reference list")
	}
	requireContains(t, stdout, "[ERROR]")
}

func TestNotifyTestWithoutTopic(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("SUMMERPOOL_NTFY_TOPIC", "")

	stdout, _, err := runCLI(t, []string{"notify", "test"}, env.configPath)
	if err != nil {
		t.Fatalf("notify test: %v", err)
	}
	requireContains(t, stdout, "Notifications disabled")
}
