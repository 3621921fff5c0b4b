package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskmasters/connect4/internal/metrics"
	"github.com/taskmasters/connect4/internal/service/game"
	"github.com/taskmasters/connect4/internal/transport/http/middleware"
	"github.com/taskmasters/connect4/internal/transport/websocket"
)

// RouterConfig wires the HTTP surface. Metrics and WS are optional.
type RouterConfig struct {
	Session        *game.Session
	Metrics        *metrics.Metrics
	WS             *websocket.Handler
	AllowedOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.Middleware())
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	gameHandler := NewGameHandler(cfg.Session)
	historyHandler := NewHistoryHandler(cfg.Session)
	leaderboardHandler := NewLeaderboardHandler(cfg.Session)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/game", gameHandler.GetGame)
		api.POST("/game/drop", gameHandler.Drop)
		api.POST("/game/pause", gameHandler.Pause)
		api.POST("/game/resume", gameHandler.Resume)
		api.POST("/game/reset", gameHandler.Reset)
		api.PUT("/game/players", gameHandler.SetPlayers)
		api.POST("/game/computer-move", gameHandler.ComputerMove)
		api.GET("/game/hint", gameHandler.Hint)

		api.GET("/history", historyHandler.GetHistory)
		api.GET("/history/:id", historyHandler.GetMatch)
		api.POST("/history/:id/replay", historyHandler.StartReplay)
		api.GET("/replay", historyHandler.GetReplay)
		api.POST("/replay/step", historyHandler.StepReplay)
		api.DELETE("/replay", historyHandler.StopReplay)

		api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		api.DELETE("/leaderboard", leaderboardHandler.ResetLeaderboard)
	}

	if cfg.WS != nil {
		router.GET("/ws", cfg.WS.Serve)
	}
	return router
}
