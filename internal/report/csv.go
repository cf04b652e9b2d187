package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"summerpool/internal/scoring"
	"summerpool/internal/standings"
)

// WriteCSV writes the standings as blank-line separated blocks: top movies,
// monthly winners, top distributors and the leaderboard.
func WriteCSV(w io.Writer, s *standings.Standings) error {
	if s == nil {
		return fmt.Errorf("write csv: no standings")
	}
	out := csv.NewWriter(w)
	rows := [][]string{{fmt.Sprintf("# Top %d Summer Movies", len(s.Movies)), "Domestic Gross"}}
	for i, movie := range s.Movies {
		rows = append(rows, []string{fmt.Sprintf("%d. %s", i+1, movie.Title), FormatDollars(movie.Gross)})
	}

	if len(s.Months) > 0 {
		rows = append(rows, nil, []string{"# Monthly Winners", "Winner"})
		for _, month := range s.Months {
			rows = append(rows, []string{month, winnerLabel(s.MonthlyWinners[month])})
		}
	}

	rows = append(rows, nil, []string{"# Top Summer Distributors", "Summer Gross"})
	for _, dist := range s.Distributors {
		rows = append(rows, []string{fmt.Sprintf("%d. %s", dist.Rank, dist.Name), FormatDollars(dist.TotalGross)})
	}

	rows = append(rows, nil, []string{"Rank", "Name", "Score"})
	places := scoring.Places(s.Results)
	for i, result := range s.Results {
		rows = append(rows, []string{strconv.Itoa(places[i]), result.Name, strconv.Itoa(result.Points)})
	}

	// A nil row is written as a bare newline separating the blocks.
	if err := out.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
