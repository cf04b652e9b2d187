package standings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"summerpool/internal/aliases"
	"summerpool/internal/boxoffice"
	"summerpool/internal/entries"
	"summerpool/internal/logging"
	"summerpool/internal/ranking"
	"summerpool/internal/scoring"
	"summerpool/internal/services"
)

var (
	// ErrEmptyReferenceList means the reference list had no usable titles.
	ErrEmptyReferenceList = errors.New("reference list is empty")
	// ErrNoMatchedMovies means no source row matched a reference title.
	ErrNoMatchedMovies = errors.New("no box office rows matched the reference list")
)

// ReferenceLoader supplies the curated reference titles.
type ReferenceLoader interface {
	LoadReferenceTitles(ctx context.Context) ([]string, error)
}

// GrossSource supplies cumulative gross rows.
type GrossSource interface {
	FetchMovieGrossRows(ctx context.Context) ([]boxoffice.GrossRow, error)
}

// DistributorSource supplies yearly rows with release dates and distributors.
type DistributorSource interface {
	FetchMovieDistributorRows(ctx context.Context) ([]boxoffice.MovieRecord, error)
}

// EntryLoader supplies pool entries.
type EntryLoader interface {
	LoadPoolEntries(ctx context.Context) ([]entries.PoolEntry, error)
}

// Settings are the season knobs a pass is computed with.
type Settings struct {
	TopMovies       int
	TopDistributors int
	Window          ranking.Window
	Months          []string
	MonthlyWinners  map[string]string
}

// Standings is the complete outcome of one pass.
type Standings struct {
	RunID          string
	GeneratedAt    time.Time
	Movies         []ranking.RankedMovie
	Distributors   []ranking.RankedDistributor
	Results        []scoring.Result
	Months         []string
	MonthlyWinners map[string]string
	Window         ranking.Window
	Diagnostics    Diagnostics
}

// Diagnostics records what the pass saw, for debug output and metrics.
type Diagnostics struct {
	ReferenceTitles int
	GrossRows       int
	MatchedMovies   int
	Unmatched       []string
	DistributorRows int
	EntriesScored   int
}

// Service computes standings from its collaborators.
type Service struct {
	reference    ReferenceLoader
	gross        GrossSource
	distributors DistributorSource
	entries      EntryLoader
	aliases      *aliases.Table
	settings     Settings
	logger       *slog.Logger
	now          func() time.Time
	newID        func() string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAliases sets the alias table used for matching and scoring.
func WithAliases(table *aliases.Table) Option {
	return func(s *Service) {
		if table != nil {
			s.aliases = table
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRunID fixes the run identifier instead of generating one.
func WithRunID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.newID = func() string { return id }
		}
	}
}

// NewService wires the collaborators. Any of them may be nil when the
// operations that need it are not used.
func NewService(ref ReferenceLoader, gross GrossSource, dist DistributorSource, loader EntryLoader, settings Settings, opts ...Option) *Service {
	s := &Service{
		reference:    ref,
		gross:        gross,
		distributors: dist,
		entries:      loader,
		aliases:      aliases.Default(),
		settings:     settings,
		logger:       logging.NewNop(),
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "standings")
	return s
}

// ComputeTopMovies loads the reference list and the gross chart and returns
// the top movies. It fails with ErrEmptyReferenceList or ErrNoMatchedMovies
// when there is nothing to rank.
func (s *Service) ComputeTopMovies(ctx context.Context, limit int) ([]ranking.RankedMovie, error) {
	result, _, err := s.matchMovies(ctx, limit)
	if err != nil {
		return nil, err
	}
	return result.Top, nil
}

func (s *Service) matchMovies(ctx context.Context, limit int) (ranking.MatchResult, Diagnostics, error) {
	var diag Diagnostics
	ctx = services.WithStage(ctx, "movies")
	logger := logging.WithContext(ctx, s.logger)
	if s.reference == nil || s.gross == nil {
		return ranking.MatchResult{}, diag, services.Wrap(services.ErrConfiguration, "movies", "compute", "reference loader and gross source required", nil)
	}

	titles, err := s.reference.LoadReferenceTitles(ctx)
	if err != nil {
		marker := services.ErrValidation
		if errors.Is(err, fs.ErrNotExist) {
			marker = services.ErrNotFound
		}
		return ranking.MatchResult{}, diag, services.Wrap(marker, "movies", "load reference list", "", err)
	}
	diag.ReferenceTitles = len(titles)
	if len(titles) == 0 {
		return ranking.MatchResult{}, diag, services.Wrap(services.ErrValidation, "movies", "load reference list", "", ErrEmptyReferenceList)
	}
	logger.Debug("reference list loaded", logging.Int("titles", len(titles)))

	rows, err := s.gross.FetchMovieGrossRows(ctx)
	if err != nil {
		return ranking.MatchResult{}, diag, err
	}
	diag.GrossRows = len(rows)

	result := ranking.MatchMovies(titles, rows, limit, s.aliases)
	diag.MatchedMovies = result.Matched
	diag.Unmatched = result.Unmatched
	if len(result.Top) == 0 {
		return result, diag, services.Wrap(services.ErrValidation, "movies", "match", fmt.Sprintf("%d source rows", len(rows)), ErrNoMatchedMovies)
	}
	logger.Info("top movies computed",
		logging.Int("source_rows", len(rows)),
		logging.Int("matched", result.Matched),
		logging.Int("unmatched_reference", len(result.Unmatched)),
	)
	for _, title := range result.Unmatched {
		logger.Debug("reference title not in chart", logging.String("title", title))
	}
	return result, diag, nil
}

// ComputeTopDistributors fetches the yearly chart and ranks distributors by
// in-window gross.
func (s *Service) ComputeTopDistributors(ctx context.Context, limit int, window ranking.Window) ([]ranking.RankedDistributor, error) {
	top, _, err := s.topDistributors(ctx, limit, window)
	return top, err
}

func (s *Service) topDistributors(ctx context.Context, limit int, window ranking.Window) ([]ranking.RankedDistributor, int, error) {
	ctx = services.WithStage(ctx, "distributors")
	if s.distributors == nil {
		return nil, 0, services.Wrap(services.ErrConfiguration, "distributors", "compute", "distributor source required", nil)
	}
	records, err := s.distributors.FetchMovieDistributorRows(ctx)
	if err != nil {
		return nil, 0, err
	}
	top := ranking.TopDistributors(records, window, limit, s.aliases)
	logging.WithContext(ctx, s.logger).Info("top distributors computed",
		logging.Int("source_rows", len(records)),
		logging.Int("ranked", len(top)),
		logging.String("window_start", window.Start.Format(time.DateOnly)),
		logging.String("window_end", window.End.Format(time.DateOnly)),
	)
	return top, len(records), nil
}

// ScoreAllEntries scores entries against the given rankings and returns the
// sorted leaderboard.
func (s *Service) ScoreAllEntries(all []entries.PoolEntry, movies []ranking.RankedMovie, monthlyWinners map[string]string, distributors []ranking.RankedDistributor) []scoring.Result {
	return scoring.ScoreAll(all, scoring.Inputs{
		Movies:         movies,
		MonthlyWinners: monthlyWinners,
		Distributors:   distributors,
		Aliases:        s.aliases,
	})
}

// Run performs a full pass. Entries are loaded before the charts are fetched
// so a missing entries file fails fast.
func (s *Service) Run(ctx context.Context) (*Standings, error) {
	runID := s.newID()
	ctx = services.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, s.logger)
	started := s.now()

	if s.entries == nil {
		return nil, services.Wrap(services.ErrConfiguration, "entries", "load", "entry loader required", nil)
	}
	poolEntries, err := s.entries.LoadPoolEntries(services.WithStage(ctx, "entries"))
	if err != nil {
		if errors.Is(err, entries.ErrMissingEntriesFile) {
			return nil, services.Wrap(services.ErrNotFound, "entries", "load", "", err)
		}
		return nil, services.Wrap(services.ErrValidation, "entries", "load", "", err)
	}

	match, diag, err := s.matchMovies(ctx, s.settings.TopMovies)
	if err != nil {
		return nil, err
	}
	dists, distRows, err := s.topDistributors(ctx, s.settings.TopDistributors, s.settings.Window)
	if err != nil {
		return nil, err
	}
	diag.DistributorRows = distRows

	for _, month := range s.settings.Months {
		if s.settings.MonthlyWinners[month] == "" {
			logger.Debug("monthly winner undecided", logging.String("month", month))
		}
	}

	results := s.ScoreAllEntries(poolEntries, match.Top, s.settings.MonthlyWinners, dists)
	diag.EntriesScored = len(results)

	standings := &Standings{
		RunID:          runID,
		GeneratedAt:    started.UTC(),
		Movies:         match.Top,
		Distributors:   dists,
		Results:        results,
		Months:         s.settings.Months,
		MonthlyWinners: s.settings.MonthlyWinners,
		Window:         s.settings.Window,
		Diagnostics:    diag,
	}
	attrs := []logging.Attr{
		logging.Int("entries", len(results)),
		logging.Int("movies", len(match.Top)),
		logging.Int("distributors", len(dists)),
		logging.Duration("elapsed", s.now().Sub(started)),
	}
	if len(results) > 0 {
		attrs = append(attrs, logging.String("leader", results[0].Name), logging.Int("leader_points", results[0].Points))
	}
	logger.Info("standings computed", logging.Args(attrs...)...)
	return standings, nil
}

// Leader returns the first leaderboard result, if any.
func (s *Standings) Leader() (scoring.Result, bool) {
	if s == nil || len(s.Results) == 0 {
		return scoring.Result{}, false
	}
	return s.Results[0], true
}
