package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskmasters/connect4/internal/domain"
	"github.com/taskmasters/connect4/internal/service/game"
	"github.com/taskmasters/connect4/internal/service/match"
	"github.com/taskmasters/connect4/pkg/uid"
)

type HistoryHandler struct {
	Session *game.Session
}

func NewHistoryHandler(s *game.Session) *HistoryHandler {
	return &HistoryHandler{Session: s}
}

type historyItem struct {
	ID         string            `json:"id"`
	WinnerName string            `json:"winner_name"`
	LoserName  string            `json:"loser_name"`
	Winner     domain.Player     `json:"winner"`
	MovesCount int               `json:"moves_count"`
	Dimensions domain.Dimensions `json:"dimensions"`
	PlayedAt   time.Time         `json:"played_at"`
}

// GetHistory lists matches, most recent first, without their move lists.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	history := h.Session.History()

	items := make([]historyItem, 0, len(history))
	for _, rec := range history {
		items = append(items, historyItem{
			ID:         rec.ID,
			WinnerName: rec.WinnerName,
			LoserName:  rec.LoserName,
			Winner:     rec.Winner,
			MovesCount: len(rec.Moves),
			Dimensions: rec.Dimensions,
			PlayedAt:   rec.PlayedAt,
		})
	}
	c.JSON(http.StatusOK, items)
}

func (h *HistoryHandler) GetMatch(c *gin.Context) {
	id := c.Param("id")
	if !uid.IsMatchID(id) {
		respondError(c, match.ErrMatchNotFound)
		return
	}

	rec, err := h.Session.Match(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *HistoryHandler) StartReplay(c *gin.Context) {
	id := c.Param("id")
	if !uid.IsMatchID(id) {
		respondError(c, match.ErrMatchNotFound)
		return
	}

	status, err := h.Session.StartReplay(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *HistoryHandler) StepReplay(c *gin.Context) {
	status, err := h.Session.StepReplay()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *HistoryHandler) GetReplay(c *gin.Context) {
	status, err := h.Session.ReplayStatus()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *HistoryHandler) StopReplay(c *gin.Context) {
	h.Session.StopReplay()
	c.Status(http.StatusNoContent)
}
