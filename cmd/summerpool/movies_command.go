package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMoviesCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "movies",
		Short: "Show the top grossing movies from the reference list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg, "")
			if err != nil {
				return err
			}
			pipe, err := buildPipeline(cfg, logger, "")
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = cfg.Season.TopMovies
			}
			movies, err := pipe.service.ComputeTopMovies(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, movieViews(movies))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderMovies(movies))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of movies to show (defaults to season.top_movies)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newDistributorsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "distributors",
		Short: "Show distributor totals for releases inside the summer window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(cfg, "")
			if err != nil {
				return err
			}
			pipe, err := buildPipeline(cfg, logger, "")
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = cfg.Season.TopDistributors
			}
			window := seasonWindow(cfg)
			dists, err := pipe.service.ComputeTopDistributors(cmd.Context(), limit, window)
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, distributorViews(dists))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderDistributors(dists, window))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Number of distributors to show (defaults to season.top_distributors)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
