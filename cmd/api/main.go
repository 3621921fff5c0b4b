package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/taskmasters/connect4/internal/config"
	"github.com/taskmasters/connect4/internal/metrics"
	"github.com/taskmasters/connect4/internal/repository/memory"
	"github.com/taskmasters/connect4/internal/repository/postgres"
	"github.com/taskmasters/connect4/internal/repository/redis"
	"github.com/taskmasters/connect4/internal/service/cleanup"
	"github.com/taskmasters/connect4/internal/service/game"
	"github.com/taskmasters/connect4/internal/service/match"
	"github.com/taskmasters/connect4/internal/service/persist"
	"github.com/taskmasters/connect4/internal/service/stats"
	transportHttp "github.com/taskmasters/connect4/internal/transport/http"
	"github.com/taskmasters/connect4/internal/transport/websocket"
)

type matchStore interface {
	match.Store
	cleanup.MatchPruner
}

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Info("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	cfg.ConfigureLogging()
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Stores
	var (
		statsStore stats.Store
		matches    matchStore
		db         *sql.DB
		rdb        *goredis.Client
	)
	mem := memory.NewStore()
	statsStore, matches = mem, mem

	switch cfg.StatsBackend {
	case config.BackendPostgres:
		var err error
		db, err = postgres.Open(cfg.DatabaseURL, postgres.PoolConfig{
			MaxOpenConns:       cfg.DBMaxOpenConns,
			MaxIdleConns:       cfg.DBMaxIdleConns,
			ConnMaxLifetimeMin: cfg.DBConnMaxLifetimeMin,
		})
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		log.Info("Running database migrations...")
		if err := postgres.RunMigrations(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		statsStore = postgres.NewStatsRepo(db)
		matches = postgres.NewMatchRepo(db)
	case config.BackendRedis:
		var err error
		rdb, err = redis.Connect(context.Background(), cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Warnf("[REDIS] %v. Falling back to in-memory statistics.", err)
			break
		}
		defer rdb.Close()
		statsStore = redis.NewStatsStore(rdb)
	case config.BackendMemory:
	default:
		log.Warnf("Unknown STATS_BACKEND %q, using memory", cfg.StatsBackend)
	}
	log.WithField("backend", cfg.StatsBackend).Info("Stores ready")

	// 2. Services
	writer := persist.NewWriter(cfg.PersistQueueSize, 5*time.Second)
	recorder := match.NewRecorder(cfg.MatchHistoryLimit, matches, writer)
	tracker := stats.NewTracker(statsStore, writer)

	m := metrics.New()
	hub := websocket.NewHub()

	session, err := game.NewSession(recorder, tracker,
		match.Names{First: cfg.PlayerOneName, Second: cfg.PlayerTwoName},
		game.Notifiers{game.LogNotifier{}, m, hub},
	)
	if err != nil {
		log.Fatalf("Invalid player names: %v", err)
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	session.Load(loadCtx)
	cancelLoad()

	// 3. Background workers
	cleanupWorker := cleanup.NewWorker(matches, cfg.MatchRetentionDays)
	if cfg.MatchRetentionDays > 0 {
		if err := cleanupWorker.Start(cfg.MatchRetentionCron); err != nil {
			log.Fatalf("Invalid MATCH_RETENTION_CRON %q: %v", cfg.MatchRetentionCron, err)
		}
		defer cleanupWorker.Stop()
	}

	// 4. HTTP
	router := transportHttp.NewRouter(transportHttp.RouterConfig{
		Session:        session,
		Metrics:        m,
		WS:             websocket.NewHandler(hub, session, cfg.AllowedOrigins),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Infof("Server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	// flush pending store writes before the connections close
	writer.Close()
	log.Info("Server exited")
}
