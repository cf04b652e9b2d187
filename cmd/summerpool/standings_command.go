package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"summerpool/internal/boxoffice"
	"summerpool/internal/config"
	"summerpool/internal/history"
	"summerpool/internal/logging"
	"summerpool/internal/metrics"
	"summerpool/internal/notifications"
	"summerpool/internal/preflight"
	"summerpool/internal/report"
	"summerpool/internal/services"
	"summerpool/internal/standings"
)

type standingsOptions struct {
	noExport      bool
	noRecord      bool
	skipPreflight bool
	jsonOutput    bool
}

func newStandingsCommand(ctx *commandContext) *cobra.Command {
	var opts standingsOptions

	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Fetch the charts, score every entry and publish the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runStandings(cmd, ctx, cfg, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.noExport, "no-export", false, "Do not write leaderboard.csv and leaderboard.html")
	cmd.Flags().BoolVar(&opts.noRecord, "no-record", false, "Do not record the run in history")
	cmd.Flags().BoolVar(&opts.skipPreflight, "skip-preflight", false, "Skip input and directory checks")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func runStandings(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, opts standingsOptions) error {
	runID := uuid.NewString()
	logger, err := ctx.newLogger(cfg, runID)
	if err != nil {
		return err
	}
	logger = logging.WithContext(services.WithRunID(cmd.Context(), runID), logging.NewComponentLogger(logger, "cli"))

	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another summerpool run holds %s", cfg.LockPath())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	started := time.Now()
	notifier := notifications.NewService(cfg)
	runMetrics := metrics.New()

	fail := func(err error, stage string, pipe *pipeline) error {
		attrs := []logging.Attr{logging.Error(err), logging.String(logging.FieldStage, stage)}
		if hint := services.Hint(err); hint != "" {
			attrs = append(attrs, logging.String(logging.FieldErrorHint, hint))
		}
		logging.ErrorWithContext(logger, "standings run failed", "run_failed", attrs...)
		if notifyErr := notifier.NotifyError(cmd.Context(), err, stage); notifyErr != nil {
			logger.Warn("error notification failed", logging.Error(notifyErr))
		}
		runMetrics.ObserveFailure(pipelineStats(pipe), time.Now(), time.Since(started))
		writeMetrics(logger, runMetrics, cfg.Metrics.TextfilePath)
		return err
	}

	if !opts.skipPreflight {
		if failed := preflight.Failed(preflight.RunAll(cmd.Context(), cfg, preflight.Options{})); len(failed) > 0 {
			return fail(preflightError(failed), "preflight", nil)
		}
	}

	pipe, err := buildPipeline(cfg, logger, runID)
	if err != nil {
		return fail(err, "setup", nil)
	}
	st, err := pipe.service.Run(cmd.Context())
	if err != nil {
		return fail(err, "standings", pipe)
	}

	var previous *history.Run
	if !opts.noRecord {
		previous, err = recordRun(cmd.Context(), cfg, st)
		if err != nil {
			return fail(err, "history", pipe)
		}
	}

	var exported []string
	if !opts.noExport {
		files, err := report.Export(cfg.Paths.OutputDir, st)
		if err != nil {
			return fail(err, "export", pipe)
		}
		exported = []string{files.CSV, files.HTML}
		logger.Info("leaderboard exported", logging.String("csv", files.CSV), logging.String("html", files.HTML))
	}

	runMetrics.ObserveStandings(st, pipe.client.Stats(), time.Now(), time.Since(started))
	writeMetrics(logger, runMetrics, cfg.Metrics.TextfilePath)

	if err := notifier.NotifyStandingsPublished(cmd.Context(), st); err != nil {
		logging.WarnWithContext(logger, "standings notification failed", "notify_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "leaderboard published without a push notification"),
		)
	}

	if opts.jsonOutput {
		return writeJSON(cmd, buildStandingsView(st, previous, exported))
	}
	printStandings(cmd, st, previous, exported)
	return nil
}

// recordRun stores the run and returns the run before it, if any, so the
// leaderboard can show movement.
func recordRun(ctx context.Context, cfg *config.Config, st *standings.Standings) (*history.Run, error) {
	store, err := history.Open(cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	previous, err := store.Previous(ctx, st.GeneratedAt)
	if err != nil {
		return nil, err
	}
	if err := store.Record(ctx, st); err != nil {
		return nil, err
	}
	return previous, nil
}

func pipelineStats(pipe *pipeline) boxoffice.ParseStats {
	if pipe == nil || pipe.client == nil {
		return boxoffice.ParseStats{}
	}
	return pipe.client.Stats()
}

func writeMetrics(logger *slog.Logger, m *metrics.RunMetrics, path string) {
	if err := m.WriteTextfile(path); err != nil {
		logger.Warn("metrics textfile not written", logging.Error(err), logging.String("path", path))
	}
}

func preflightError(failed []preflight.Result) error {
	parts := make([]string, 0, len(failed))
	for _, r := range failed {
		parts = append(parts, fmt.Sprintf("%s: %s", r.Name, r.Detail))
	}
	return services.Wrap(services.ErrConfiguration, "preflight", "", strings.Join(parts, "; "), errors.New("checks failed"))
}

func buildStandingsView(st *standings.Standings, previous *history.Run, exported []string) standingsView {
	view := standingsView{
		RunID:        st.RunID,
		GeneratedAt:  st.GeneratedAt,
		Movies:       movieViews(st.Movies),
		Distributors: distributorViews(st.Distributors),
		Leaderboard:  scoreViews(st.Results, previous),
		Exported:     exported,
	}
	for _, month := range st.Months {
		view.MonthlyWinners = append(view.MonthlyWinners, winnerView{Month: month, Winner: st.MonthlyWinners[month]})
	}
	return view
}

func printStandings(cmd *cobra.Command, st *standings.Standings, previous *history.Run, exported []string) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	fmt.Fprintln(out, renderMovies(st.Movies))
	if len(st.Months) > 0 {
		fmt.Fprintln(out, renderMonthlyWinners(st.Months, st.MonthlyWinners))
	}
	fmt.Fprintln(out, renderDistributors(st.Distributors, st.Window))
	fmt.Fprintln(out, renderLeaderboard(st.Results, previous, colorize))
	if previous != nil {
		fmt.Fprintf(out, "Movement since %s\n", previous.GeneratedAt.Local().Format("Jan 2 15:04"))
	}
	if len(exported) > 0 {
		fmt.Fprintf(out, "Saved %s\n", strings.Join(exported, " and "))
	}
}
