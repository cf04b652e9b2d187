package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"summerpool/internal/config"
	"summerpool/internal/history"
	"summerpool/internal/ranking"
	"summerpool/internal/scoring"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and prune recorded standings runs",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryPruneCommand(ctx))

	return historyCmd
}

type runSummaryView struct {
	ID           string    `json:"id"`
	GeneratedAt  time.Time `json:"generated_at"`
	WindowStart  time.Time `json:"window_start"`
	WindowEnd    time.Time `json:"window_end"`
	Entries      int       `json:"entries"`
	Leader       string    `json:"leader,omitempty"`
	LeaderPoints int       `json:"leader_points"`
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(_ *config.Config, store *history.Store) error {
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if jsonOutput {
					views := make([]runSummaryView, 0, len(runs))
					for _, run := range runs {
						views = append(views, runSummaryView(run))
					}
					return writeJSON(cmd, views)
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					leader := run.Leader
					if leader == "" {
						leader = "-"
					}
					rows = append(rows, []string{
						run.ID,
						run.GeneratedAt.Local().Format("2006-01-02 15:04"),
						strconv.Itoa(run.Entries),
						leader,
						strconv.Itoa(run.LeaderPoints),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"Run", "Generated", "Entries", "Leader", "Points"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the full standings recorded by a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withHistory(func(_ *config.Config, store *history.Store) error {
				run, err := store.GetRun(cmd.Context(), args[0])
				if err != nil {
					if errors.Is(err, history.ErrRunNotFound) {
						return fmt.Errorf("no recorded run with id %q", args[0])
					}
					return err
				}
				previous, err := store.Previous(cmd.Context(), run.GeneratedAt)
				if err != nil {
					return err
				}

				results := runResults(run)
				if jsonOutput {
					view := standingsView{
						RunID:        run.ID,
						GeneratedAt:  run.GeneratedAt,
						Movies:       movieViews(run.Movies),
						Distributors: distributorViews(run.Distributors),
						Leaderboard:  scoreViews(results, previous),
					}
					for _, winner := range run.MonthlyWinners {
						view.MonthlyWinners = append(view.MonthlyWinners, winnerView(winner))
					}
					return writeJSON(cmd, view)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s generated %s\n", run.ID, run.GeneratedAt.Local().Format(time.RFC1123))
				fmt.Fprintln(out, renderMovies(run.Movies))
				if len(run.MonthlyWinners) > 0 {
					months := make([]string, 0, len(run.MonthlyWinners))
					winners := make(map[string]string, len(run.MonthlyWinners))
					for _, w := range run.MonthlyWinners {
						months = append(months, w.Month)
						winners[w.Month] = w.Winner
					}
					fmt.Fprintln(out, renderMonthlyWinners(months, winners))
				}
				window := ranking.Window{Start: run.WindowStart, End: run.WindowEnd}
				fmt.Fprintln(out, renderDistributors(run.Distributors, window))
				fmt.Fprintln(out, renderLeaderboard(results, previous, shouldColorize(out)))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the most recent runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if keep < 0 {
				return fmt.Errorf("--keep must not be negative")
			}
			return ctx.withHistory(func(_ *config.Config, store *history.Store) error {
				removed, err := store.Prune(cmd.Context(), keep)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s), kept the latest %d\n", removed, keep)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&keep, "keep", 10, "Number of most recent runs to keep")
	return cmd
}

func runResults(run *history.Run) []scoring.Result {
	results := make([]scoring.Result, 0, len(run.Scores))
	for _, score := range run.Scores {
		results = append(results, score.Result)
	}
	return results
}
