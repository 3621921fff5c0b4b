package domain

import (
	"sort"
	"time"
)

// MatchRecord is the immutable, replayable summary of a won game.
type MatchRecord struct {
	ID         string     `json:"id"`
	Winner     Player     `json:"winner"`
	Loser      Player     `json:"loser"`
	WinnerName string     `json:"winner_name"`
	LoserName  string     `json:"loser_name"`
	PlayedAt   time.Time  `json:"played_at"`
	Moves      []Move     `json:"moves"`
	Dimensions Dimensions `json:"dimensions"`
}

// PlayerStats is keyed by display name. WinRate is always derived.
type PlayerStats struct {
	Name       string `json:"name"`
	Wins       int    `json:"wins"`
	TotalGames int    `json:"total_games"`
}

func (s PlayerStats) WinRate() float64 {
	if s.TotalGames <= 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.TotalGames)
}

func (s PlayerStats) Losses() int {
	return s.TotalGames - s.Wins
}

// SortLeaderboard orders by win rate descending. Ties fall back to wins, games played, then name.
func SortLeaderboard(entries []PlayerStats) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if ra, rb := a.WinRate(), b.WinRate(); ra != rb {
			return ra > rb
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.TotalGames != b.TotalGames {
			return a.TotalGames > b.TotalGames
		}
		return a.Name < b.Name
	})
}
