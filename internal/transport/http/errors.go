package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskmasters/connect4/internal/domain"
	"github.com/taskmasters/connect4/internal/service/bot"
	"github.com/taskmasters/connect4/internal/service/game"
	"github.com/taskmasters/connect4/internal/service/match"
	"github.com/taskmasters/connect4/internal/service/replay"
)

const ErrUnknownLevel domain.Error = "unknown computer level"

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidColumn),
		errors.Is(err, domain.ErrInvalidDimensions),
		errors.Is(err, domain.ErrInvalidPlayer),
		errors.Is(err, game.ErrInvalidNames),
		errors.Is(err, game.ErrInvalidBoard),
		errors.Is(err, ErrUnknownLevel):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrColumnFull),
		errors.Is(err, domain.ErrGameOver),
		errors.Is(err, domain.ErrGamePaused),
		errors.Is(err, bot.ErrNoMoves):
		return http.StatusConflict
	case errors.Is(err, match.ErrMatchNotFound),
		errors.Is(err, game.ErrNoReplay):
		return http.StatusNotFound
	case errors.Is(err, replay.ErrMalformedRecord),
		errors.Is(err, replay.ErrMoveRejected):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.Error(err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
