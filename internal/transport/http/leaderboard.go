package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskmasters/connect4/internal/service/game"
)

type LeaderboardHandler struct {
	Session *game.Session
}

func NewLeaderboardHandler(s *game.Session) *LeaderboardHandler {
	return &LeaderboardHandler{Session: s}
}

type leaderboardEntry struct {
	Rank       int     `json:"rank"`
	Name       string  `json:"name"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	TotalGames int     `json:"total_games"`
	WinRate    float64 `json:"win_rate"`
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	board := h.Session.Leaderboard()

	entries := make([]leaderboardEntry, 0, len(board))
	for i, s := range board {
		entries = append(entries, leaderboardEntry{
			Rank:       i + 1,
			Name:       s.Name,
			Wins:       s.Wins,
			Losses:     s.Losses(),
			TotalGames: s.TotalGames,
			WinRate:    s.WinRate(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"players": entries, "draws": h.Session.Draws()})
}

func (h *LeaderboardHandler) ResetLeaderboard(c *gin.Context) {
	h.Session.ResetLeaderboard()
	c.Status(http.StatusNoContent)
}
