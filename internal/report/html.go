package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"summerpool/internal/ranking"
	"summerpool/internal/scoring"
	"summerpool/internal/standings"
)

//go:embed templates/leaderboard.html.tmpl
var leaderboardTemplate string

var pageTemplate = template.Must(template.New("leaderboard").Funcs(template.FuncMap{
	"dollars": FormatDollars,
	"inc":     func(i int) int { return i + 1 },
}).Parse(leaderboardTemplate))

type monthRow struct {
	Month  string
	Winner string
}

type leaderRow struct {
	scoring.Result
	Place int
}

type pageData struct {
	Movies       []ranking.RankedMovie
	Months       []monthRow
	Distributors []ranking.RankedDistributor
	Leaderboard  []leaderRow
	GeneratedAt  string
}

// WriteHTML renders the standings as a standalone HTML page. Titles and names
// are escaped by html/template.
func WriteHTML(w io.Writer, s *standings.Standings) error {
	if s == nil {
		return fmt.Errorf("write html: no standings")
	}
	data := pageData{
		Movies:       s.Movies,
		Distributors: s.Distributors,
		GeneratedAt:  s.GeneratedAt.UTC().Format(time.RFC1123),
	}
	for _, month := range s.Months {
		data.Months = append(data.Months, monthRow{Month: month, Winner: winnerLabel(s.MonthlyWinners[month])})
	}
	places := scoring.Places(s.Results)
	for i, result := range s.Results {
		data.Leaderboard = append(data.Leaderboard, leaderRow{Result: result, Place: places[i]})
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("write html: %w", err)
	}
	return nil
}
