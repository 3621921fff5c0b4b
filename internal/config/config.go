package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port                 string
	AllowedOrigins       []string
	FrontendURL          string
	LogLevel             string
	LogJSON              bool
	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int
	RedisAddr            string
	RedisPassword        string
	StatsBackend         string
	PersistQueueSize     int
	MatchHistoryLimit    int
	MatchRetentionDays   int
	MatchRetentionCron   string
	PlayerOneName        string
	PlayerTwoName        string
	ShutdownTimeout      time.Duration
}

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOrigins := []string{frontendURL}
	for _, origin := range strings.Split(GetEnv("ALLOWED_ORIGINS", ""), ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			allowedOrigins = append(allowedOrigins, trimmed)
		}
	}

	// Append simple_protocol for PgBouncer compatibility (pgx driver)
	dbURL := GetEnv("DATABASE_URL", "")
	if dbURL != "" {
		if u, err := url.Parse(dbURL); err == nil {
			q := u.Query()
			if q.Get("default_query_exec_mode") == "" {
				q.Set("default_query_exec_mode", "simple_protocol")
				u.RawQuery = q.Encode()
				dbURL = u.String()
			}
		}
	}

	backend := strings.ToLower(GetEnv("STATS_BACKEND", ""))
	if backend == "" {
		backend = BackendMemory
		if dbURL != "" {
			backend = BackendPostgres
		}
	}

	return &Config{
		Port:                 port,
		AllowedOrigins:       allowedOrigins,
		FrontendURL:          frontendURL,
		LogLevel:             GetEnv("LOG_LEVEL", "info"),
		LogJSON:              GetEnvAsBool("LOG_JSON", false),
		DatabaseURL:          dbURL,
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),
		RedisAddr:            GetEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:        GetEnv("REDIS_PASSWORD", ""),
		StatsBackend:         backend,
		PersistQueueSize:     GetEnvAsInt("PERSIST_QUEUE_SIZE", 256),
		MatchHistoryLimit:    GetEnvAsInt("MATCH_HISTORY_LIMIT", 100),
		MatchRetentionDays:   GetEnvAsInt("MATCH_RETENTION_DAYS", 30),
		MatchRetentionCron:   GetEnv("MATCH_RETENTION_CRON", "0 0 * * * *"),
		PlayerOneName:        GetEnv("PLAYER_ONE_NAME", "Red"),
		PlayerTwoName:        GetEnv("PLAYER_TWO_NAME", "Yellow"),
		ShutdownTimeout:      time.Duration(GetEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warnf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warnf("Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// ConfigureLogging applies the configured level to the standard logrus logger.
func (c *Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warnf("Unknown LOG_LEVEL %q, using info", c.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if c.LogJSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
