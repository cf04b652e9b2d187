// Package scoring awards pool points for an entry against the current
// rankings and orders the resulting leaderboard.
//
// Points per entry:
//   - movie pick at position i: 1 if the movie is anywhere in the top list,
//     plus i more when it sits exactly at rank i
//   - monthly guess: 3 when it names the decided winner for that month
//   - distributor guess at position k (1..3): 5, 3 or 1 when it names the
//     distributor ranked exactly k
//
// Comparisons use normalized keys, and an empty key never matches.
package scoring

import (
	"cmp"
	"slices"

	"summerpool/internal/aliases"
	"summerpool/internal/entries"
	"summerpool/internal/normalize"
	"summerpool/internal/ranking"
)

const (
	// MoviePresencePoints is awarded for a pick found anywhere in the top list.
	MoviePresencePoints = 1
	// MonthlyWinnerPoints is awarded for each correct monthly guess.
	MonthlyWinnerPoints = 3
)

// DistributorRankPoints holds the award for an exact distributor guess at
// ranks 1, 2 and 3.
var DistributorRankPoints = [entries.DistributorGuessCount]int{5, 3, 1}

// Result is an entry's total and its breakdown.
type Result struct {
	Name              string
	Points            int
	MoviePoints       int
	MonthlyPoints     int
	DistributorPoints int
}

// Inputs bundles the rankings an entry is scored against.
type Inputs struct {
	Movies         []ranking.RankedMovie
	MonthlyWinners map[string]string
	Distributors   []ranking.RankedDistributor
	Aliases        *aliases.Table
}

// Score computes the points for a single entry. It is pure and safe to call
// concurrently.
func Score(entry entries.PoolEntry, in Inputs) Result {
	result := Result{
		Name:              entry.Name,
		MoviePoints:       moviePoints(entry.MoviePicks, in.Movies, in.Aliases),
		MonthlyPoints:     monthlyPoints(entry.MonthlyGuesses, in.MonthlyWinners, in.Aliases),
		DistributorPoints: distributorPoints(entry.DistributorGuesses, in.Distributors, in.Aliases),
	}
	result.Points = result.MoviePoints + result.MonthlyPoints + result.DistributorPoints
	return result
}

func moviePoints(picks []string, movies []ranking.RankedMovie, table *aliases.Table) int {
	keys := make([]string, len(movies))
	for i, movie := range movies {
		keys[i] = normalize.Key(movie.Title)
	}
	total := 0
	for i, pick := range picks {
		position := i + 1
		key := table.TitleKey(pick)
		if key == "" {
			continue
		}
		idx := slices.Index(keys, key)
		if idx < 0 {
			continue
		}
		total += MoviePresencePoints
		if idx+1 == position {
			total += position
		}
	}
	return total
}

func monthlyPoints(guesses, winners map[string]string, table *aliases.Table) int {
	total := 0
	for month, winner := range winners {
		winnerKey := table.TitleKey(winner)
		if winnerKey == "" {
			continue
		}
		if table.TitleKey(guesses[month]) == winnerKey {
			total += MonthlyWinnerPoints
		}
	}
	return total
}

func distributorPoints(guesses []string, ranked []ranking.RankedDistributor, table *aliases.Table) int {
	total := 0
	for i, guess := range guesses {
		if i >= len(DistributorRankPoints) {
			break
		}
		key := table.DistributorKey(guess)
		if key == "" {
			continue
		}
		idx := slices.IndexFunc(ranked, func(d ranking.RankedDistributor) bool { return d.Rank == i+1 })
		if idx < 0 {
			continue
		}
		if normalize.Key(ranked[idx].Name) == key {
			total += DistributorRankPoints[i]
		}
	}
	return total
}

// ScoreAll scores every entry and returns the leaderboard: points descending,
// then name ascending.
func ScoreAll(all []entries.PoolEntry, in Inputs) []Result {
	results := make([]Result, 0, len(all))
	for _, entry := range all {
		results = append(results, Score(entry, in))
	}
	SortLeaderboard(results)
	return results
}

// SortLeaderboard orders results by points descending, then name ascending.
func SortLeaderboard(results []Result) {
	slices.SortStableFunc(results, func(a, b Result) int {
		if c := cmp.Compare(b.Points, a.Points); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

// Places assigns 1-based leaderboard places with ties sharing a place
// (1, 2, 2, 4). results must already be sorted.
func Places(results []Result) []int {
	places := make([]int, len(results))
	for i := range results {
		if i > 0 && results[i].Points == results[i-1].Points {
			places[i] = places[i-1]
			continue
		}
		places[i] = i + 1
	}
	return places
}
