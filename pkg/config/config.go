package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort string
	LogLevel   string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	FeedBaseURL     string
	FeedPageSize    int
	FetchRetryLimit int

	EnrichContent   bool
	EnrichTimeout   time.Duration
	MarketSegment   string
	PathsFile       string
	WorkerPollDelay time.Duration
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "user"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "password"),
		PostgresDB:       getEnv("POSTGRES_DB", "stocknews"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		FeedBaseURL:      getEnv("FEED_BASE_URL", ""),
		FeedPageSize:     getEnvAsInt("FEED_PAGE_SIZE", 30),
		FetchRetryLimit:  getEnvAsInt("FETCH_RETRY_LIMIT", 5),
		EnrichContent:    getEnvAsBool("ENRICH_CONTENT", false),
		EnrichTimeout:    getEnvAsDuration("ENRICH_TIMEOUT_SECONDS", 60) * time.Second,
		MarketSegment:    getEnv("MARKET_SEGMENT", "上市"),
		PathsFile:        getEnv("PATHS_FILE", ""),
		WorkerPollDelay:  getEnvAsDuration("WORKER_POLL_DELAY_SECONDS", 2) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback))
}
