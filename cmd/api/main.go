package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/user/stocknews-service/internal/adapter/twse"
	redis_adapter "github.com/user/stocknews-service/internal/adapter/redis"
	"github.com/user/stocknews-service/internal/delivery/http/handler"
	"github.com/user/stocknews-service/internal/delivery/http/router"
	"github.com/user/stocknews-service/internal/adapter/postgres"
	"github.com/user/stocknews-service/internal/pathcfg"
	"github.com/user/stocknews-service/internal/repository"
	"github.com/user/stocknews-service/internal/usecase"
	"github.com/user/stocknews-service/pkg/config"
	"github.com/user/stocknews-service/pkg/logger"
	"github.com/user/stocknews-service/pkg/metrics"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Logger ---
	logLevel := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger.Init(os.Stdout, logLevel)
	slog.Info("Logger initialized", "level", logLevel.String())

	// --- Metrics ---
	metrics.Init()
	slog.Info("Metrics initialized")

	// --- Database Connections ---
	ctx := context.Background()

	// PostgreSQL
	pgConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
	dbpool, err := pgxpool.New(ctx, pgConnString)
	if err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	slog.Info("PostgreSQL connection pool established")

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("Unable to connect to Redis", "error", err)
		os.Exit(1)
	}
	slog.Info("Redis connection established")

	// --- Repositories ---
	queueRepo := redis_adapter.NewJobQueueRepo(rdb)
	storeRepo := postgres.NewArticleStore(dbpool)
	catalogRepo := buildCatalog(cfg)

	// --- Use Cases ---
	analyzer := usecase.NewMentionUseCase(catalogRepo, cfg.MarketSegment)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(queueRepo, storeRepo, analyzer, cfg.FeedPageSize)
	httpRouter := router.New(apiHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("Starting server", "port", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
		os.Exit(1)
	}
}

// buildCatalog prefers a previously downloaded stock list file; without one
// it scrapes the exchange boards directly.
func buildCatalog(cfg *config.Config) repository.StockCatalogRepository {
	if cfg.PathsFile != "" {
		paths, err := pathcfg.Load(cfg.PathsFile)
		if err != nil {
			slog.Warn("Failed to load path config, scraping catalog instead", "error", err)
			return twse.NewCatalog()
		}
		if csvPath, ok := paths.FilePath("stocks_list_path"); ok {
			if _, err := os.Stat(csvPath); err == nil {
				slog.Info("Using stock list file", "path", csvPath)
				return twse.NewCSVCatalog(csvPath)
			}
		}
	}
	return twse.NewCatalog()
}
