package history

import (
	"time"

	"summerpool/internal/ranking"
	"summerpool/internal/scoring"
)

// RunSummary is one row of the run list.
type RunSummary struct {
	ID           string
	GeneratedAt  time.Time
	WindowStart  time.Time
	WindowEnd    time.Time
	Entries      int
	Leader       string
	LeaderPoints int
}

// Score is a recorded leaderboard line with the shared place it held.
type Score struct {
	scoring.Result
	Place int
}

// MonthlyWinner is the winner recorded for a month; an empty Winner means the
// month was undecided at the time of the run.
type MonthlyWinner struct {
	Month  string
	Winner string
}

// Run is a fully recorded standings run.
type Run struct {
	RunSummary
	Movies         []ranking.RankedMovie
	Distributors   []ranking.RankedDistributor
	Scores         []Score
	MonthlyWinners []MonthlyWinner
}

// Places maps participant names to the place they held in the run.
func (r *Run) Places() map[string]int {
	if r == nil {
		return nil
	}
	places := make(map[string]int, len(r.Scores))
	for _, score := range r.Scores {
		places[score.Name] = score.Place
	}
	return places
}

// Movement compares a current place with the place held in a previous run.
// Positive values mean the participant climbed; ok is false for newcomers.
func Movement(previous map[string]int, name string, place int) (delta int, ok bool) {
	before, ok := previous[name]
	if !ok {
		return 0, false
	}
	return before - place, true
}
