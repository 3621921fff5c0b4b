package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskmasters/connect4/internal/service/bot"
	"github.com/taskmasters/connect4/internal/service/game"
)

type GameHandler struct {
	Session *game.Session
}

func NewGameHandler(s *game.Session) *GameHandler {
	return &GameHandler{Session: s}
}

type dropRequest struct {
	Column *int `json:"column" binding:"required"`
}

type playersRequest struct {
	First  string `json:"first" binding:"required"`
	Second string `json:"second" binding:"required"`
}

type moveResponse struct {
	Result game.DropResult `json:"result"`
	Game   game.Snapshot   `json:"game"`
}

func (h *GameHandler) GetGame(c *gin.Context) {
	c.JSON(http.StatusOK, h.Session.Snapshot())
}

func (h *GameHandler) Drop(c *gin.Context) {
	var req dropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	res, err := h.Session.DropPiece(*req.Column)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, moveResponse{Result: res, Game: h.Session.Snapshot()})
}

func (h *GameHandler) ComputerMove(c *gin.Context) {
	level, ok := bot.ParseLevel(c.Query("level"))
	if !ok {
		respondError(c, ErrUnknownLevel)
		return
	}

	res, err := h.Session.ComputerMove(level)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, moveResponse{Result: res, Game: h.Session.Snapshot()})
}

func (h *GameHandler) Hint(c *gin.Context) {
	level, ok := bot.ParseLevel(c.Query("level"))
	if !ok {
		respondError(c, ErrUnknownLevel)
		return
	}

	col, err := h.Session.Hint(level)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"column": col})
}

func (h *GameHandler) Pause(c *gin.Context) {
	changed := h.Session.Pause()
	c.JSON(http.StatusOK, gin.H{"changed": changed, "game": h.Session.Snapshot()})
}

func (h *GameHandler) Resume(c *gin.Context) {
	changed := h.Session.Resume()
	c.JSON(http.StatusOK, gin.H{"changed": changed, "game": h.Session.Snapshot()})
}

// Reset accepts an empty body for a standard board.
func (h *GameHandler) Reset(c *gin.Context) {
	var opts game.ResetOptions
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&opts); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
	}

	snap, err := h.Session.Reset(opts)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *GameHandler) SetPlayers(c *gin.Context) {
	var req playersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "first and second are required"})
		return
	}

	if err := h.Session.SetPlayerNames(req.First, req.Second); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Session.Snapshot())
}
