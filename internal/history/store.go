package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"summerpool/internal/config"
	"summerpool/internal/ranking"
	"summerpool/internal/scoring"
	"summerpool/internal/standings"
)

// ErrRunNotFound is returned by GetRun for an unknown run identifier.
var ErrRunNotFound = errors.New("run not found")

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database under the configured
// data directory and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.HistoryPath())
}

// OpenPath opens the history database at an explicit path.
func OpenPath(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record persists a completed standings run. Recording the same run twice is
// an error.
func (s *Store) Record(ctx context.Context, st *standings.Standings) error {
	if st == nil {
		return errors.New("standings is nil")
	}
	if st.RunID == "" {
		return errors.New("standings run id is empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	leader, leaderPoints := "", 0
	if top, ok := st.Leader(); ok {
		leader, leaderPoints = top.Name, top.Points
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, generated_at, window_start, window_end, entries, leader, leader_points)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		st.RunID,
		formatTime(st.GeneratedAt),
		nullableTime(st.Window.Start),
		nullableTime(st.Window.End),
		len(st.Results),
		nullableString(leader),
		leaderPoints,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, movie := range st.Movies {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_movies (run_id, position, title, gross) VALUES (?, ?, ?, ?)`,
			st.RunID, i+1, movie.Title, movie.Gross,
		); err != nil {
			return fmt.Errorf("insert run movie: %w", err)
		}
	}
	for _, dist := range st.Distributors {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_distributors (run_id, rank, name, total_gross) VALUES (?, ?, ?, ?)`,
			st.RunID, dist.Rank, dist.Name, dist.TotalGross,
		); err != nil {
			return fmt.Errorf("insert run distributor: %w", err)
		}
	}
	places := scoring.Places(st.Results)
	for i, result := range st.Results {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_scores (
                run_id, position, place, name, points, movie_points, monthly_points, distributor_points
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			st.RunID, i+1, places[i], result.Name, result.Points,
			result.MoviePoints, result.MonthlyPoints, result.DistributorPoints,
		); err != nil {
			return fmt.Errorf("insert run score: %w", err)
		}
	}
	for i, month := range st.Months {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_monthly_winners (run_id, position, month, winner) VALUES (?, ?, ?, ?)`,
			st.RunID, i+1, month, nullableString(st.MonthlyWinners[month]),
		); err != nil {
			return fmt.Errorf("insert run monthly winner: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

const summaryColumns = "id, generated_at, window_start, window_end, entries, leader, leader_points"

// ListRuns returns the most recent runs first. A non-positive limit lists all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM runs ORDER BY generated_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, summary)
	}
	return runs, rows.Err()
}

// GetRun loads a run with its movies, distributors, monthly winners and scores.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+summaryColumns+` FROM runs WHERE id = ?`, id)
	summary, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return s.loadDetails(ctx, summary)
}

// Previous returns the latest run generated strictly before the given time,
// or nil when there is none.
func (s *Store) Previous(ctx context.Context, before time.Time) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+summaryColumns+` FROM runs WHERE generated_at < ? ORDER BY generated_at DESC, id DESC LIMIT 1`,
		formatTime(before),
	)
	summary, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("previous run: %w", err)
	}
	return s.loadDetails(ctx, summary)
}

// Prune deletes all but the newest keep runs and returns how many were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (
            SELECT id FROM runs ORDER BY generated_at DESC, id DESC LIMIT ?
        )`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) loadDetails(ctx context.Context, summary RunSummary) (*Run, error) {
	run := &Run{RunSummary: summary}

	rows, err := s.db.QueryContext(ctx, `SELECT title, gross FROM run_movies WHERE run_id = ? ORDER BY position`, summary.ID)
	if err != nil {
		return nil, fmt.Errorf("load run movies: %w", err)
	}
	for rows.Next() {
		var movie ranking.RankedMovie
		if err := rows.Scan(&movie.Title, &movie.Gross); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan run movie: %w", err)
		}
		run.Movies = append(run.Movies, movie)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT rank, name, total_gross FROM run_distributors WHERE run_id = ? ORDER BY rank`, summary.ID)
	if err != nil {
		return nil, fmt.Errorf("load run distributors: %w", err)
	}
	for rows.Next() {
		var dist ranking.RankedDistributor
		if err := rows.Scan(&dist.Rank, &dist.Name, &dist.TotalGross); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan run distributor: %w", err)
		}
		run.Distributors = append(run.Distributors, dist)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT month, winner FROM run_monthly_winners WHERE run_id = ? ORDER BY position`, summary.ID)
	if err != nil {
		return nil, fmt.Errorf("load run monthly winners: %w", err)
	}
	for rows.Next() {
		var (
			month  string
			winner sql.NullString
		)
		if err := rows.Scan(&month, &winner); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan run monthly winner: %w", err)
		}
		run.MonthlyWinners = append(run.MonthlyWinners, MonthlyWinner{Month: month, Winner: winner.String})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT place, name, points, movie_points, monthly_points, distributor_points
         FROM run_scores WHERE run_id = ? ORDER BY position`,
		summary.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("load run scores: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var score Score
		if err := rows.Scan(&score.Place, &score.Name, &score.Points, &score.MoviePoints, &score.MonthlyPoints, &score.DistributorPoints); err != nil {
			return nil, fmt.Errorf("scan run score: %w", err)
		}
		run.Scores = append(run.Scores, score)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return run, nil
}
