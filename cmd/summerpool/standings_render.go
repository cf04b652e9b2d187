package main

import (
	"fmt"
	"strconv"
	"time"

	"summerpool/internal/history"
	"summerpool/internal/ranking"
	"summerpool/internal/report"
	"summerpool/internal/scoring"
)

func renderMovies(movies []ranking.RankedMovie) string {
	rows := make([][]string, 0, len(movies))
	for i, movie := range movies {
		rows = append(rows, []string{strconv.Itoa(i + 1), movie.Title, report.FormatDollars(movie.Gross)})
	}
	return tableSpec{
		title:   fmt.Sprintf("Top %d Summer Movies", len(movies)),
		headers: []string{"#", "Movie", "Domestic Gross"},
		rows:    rows,
		aligns:  []columnAlignment{alignRight, alignLeft, alignRight},
	}.render()
}

func renderDistributors(dists []ranking.RankedDistributor, window ranking.Window) string {
	rows := make([][]string, 0, len(dists))
	for _, dist := range dists {
		rows = append(rows, []string{strconv.Itoa(dist.Rank), dist.Name, report.FormatDollars(dist.TotalGross)})
	}
	spec := tableSpec{
		title:   "Top Summer Distributors",
		headers: []string{"#", "Distributor", "Summer Gross"},
		rows:    rows,
		aligns:  []columnAlignment{alignRight, alignLeft, alignRight},
	}
	if !window.Start.IsZero() {
		last := window.End.AddDate(0, 0, -1)
		spec.footer = []string{"", "Released", window.Start.Format("Jan 2") + " to " + last.Format("Jan 2, 2006")}
	}
	return spec.render()
}

func renderMonthlyWinners(months []string, winners map[string]string) string {
	rows := make([][]string, 0, len(months))
	for _, month := range months {
		winner := winners[month]
		if winner == "" {
			winner = "TBD"
		}
		rows = append(rows, []string{month, winner})
	}
	return tableSpec{
		title:   "Monthly Winners",
		headers: []string{"Month", "Winner"},
		rows:    rows,
	}.render()
}

func renderLeaderboard(results []scoring.Result, previous *history.Run, colorize bool) string {
	places := scoring.Places(results)
	before := previous.Places()
	rows := make([][]string, 0, len(results))
	for i, result := range results {
		delta, known := history.Movement(before, result.Name, places[i])
		rows = append(rows, []string{
			strconv.Itoa(places[i]),
			result.Name,
			strconv.Itoa(result.MoviePoints),
			strconv.Itoa(result.MonthlyPoints),
			strconv.Itoa(result.DistributorPoints),
			strconv.Itoa(result.Points),
			movementLabel(delta, known, previous != nil, colorize),
		})
	}
	return tableSpec{
		title:   "Pool Leaderboard",
		headers: []string{"#", "Name", "Movies", "Monthly", "Distributors", "Score", "Move"},
		rows:    rows,
		aligns:  []columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight, alignLeft},
	}.render()
}

type movieView struct {
	Rank  int    `json:"rank"`
	Title string `json:"title"`
	Gross int64  `json:"gross"`
}

type distributorView struct {
	Rank       int    `json:"rank"`
	Name       string `json:"name"`
	TotalGross int64  `json:"total_gross"`
}

type winnerView struct {
	Month  string `json:"month"`
	Winner string `json:"winner,omitempty"`
}

type scoreView struct {
	Place             int    `json:"place"`
	Name              string `json:"name"`
	Points            int    `json:"points"`
	MoviePoints       int    `json:"movie_points"`
	MonthlyPoints     int    `json:"monthly_points"`
	DistributorPoints int    `json:"distributor_points"`
	Movement          *int   `json:"movement,omitempty"`
}

type standingsView struct {
	RunID          string            `json:"run_id"`
	GeneratedAt    time.Time         `json:"generated_at"`
	Movies         []movieView       `json:"movies"`
	MonthlyWinners []winnerView      `json:"monthly_winners"`
	Distributors   []distributorView `json:"distributors"`
	Leaderboard    []scoreView       `json:"leaderboard"`
	Exported       []string          `json:"exported,omitempty"`
}

func movieViews(movies []ranking.RankedMovie) []movieView {
	views := make([]movieView, 0, len(movies))
	for i, movie := range movies {
		views = append(views, movieView{Rank: i + 1, Title: movie.Title, Gross: movie.Gross})
	}
	return views
}

func distributorViews(dists []ranking.RankedDistributor) []distributorView {
	views := make([]distributorView, 0, len(dists))
	for _, dist := range dists {
		views = append(views, distributorView{Rank: dist.Rank, Name: dist.Name, TotalGross: dist.TotalGross})
	}
	return views
}

func scoreViews(results []scoring.Result, previous *history.Run) []scoreView {
	places := scoring.Places(results)
	before := previous.Places()
	views := make([]scoreView, 0, len(results))
	for i, result := range results {
		view := scoreView{
			Place:             places[i],
			Name:              result.Name,
			Points:            result.Points,
			MoviePoints:       result.MoviePoints,
			MonthlyPoints:     result.MonthlyPoints,
			DistributorPoints: result.DistributorPoints,
		}
		if delta, ok := history.Movement(before, result.Name, places[i]); ok {
			view.Movement = &delta
		}
		views = append(views, view)
	}
	return views
}
