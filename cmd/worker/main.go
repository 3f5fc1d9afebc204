package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/user/stocknews-service/internal/adapter/chromedp_enricher"
	"github.com/user/stocknews-service/internal/adapter/cnyesfeed"
	"github.com/user/stocknews-service/internal/adapter/postgres"
	redis_adapter "github.com/user/stocknews-service/internal/adapter/redis"
	"github.com/user/stocknews-service/internal/repository"
	"github.com/user/stocknews-service/internal/usecase"
	"github.com/user/stocknews-service/pkg/config"
	"github.com/user/stocknews-service/pkg/logger"
	"github.com/user/stocknews-service/pkg/metrics"
)

func main() {
	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger.Init(os.Stdout, logLevel)
	metrics.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
	dbpool, err := pgxpool.New(ctx, pgConnString)
	if err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("Unable to connect to Redis", "error", err)
		os.Exit(1)
	}

	var enricher repository.ContentEnricher
	if cfg.EnrichContent {
		enricher, err = chromedp_enricher.NewChromedpEnricher("", 1, cfg.EnrichTimeout)
		if err != nil {
			slog.Error("Unable to initialize content enricher", "error", err)
			os.Exit(1)
		}
	}

	politeness := cnyesfeed.NewRandomPoliteness()
	feedClient := cnyesfeed.NewClient(cfg.FeedBaseURL, cfg.FetchRetryLimit, politeness)
	crawler := usecase.NewCrawlUseCase(feedClient, politeness, enricher)
	ingestor := usecase.NewIngestUseCase(crawler, postgres.NewArticleStore(dbpool), redis_adapter.NewSeenRepo(rdb))
	queueRepo := redis_adapter.NewJobQueueRepo(rdb)
	worker := usecase.NewWorkerUseCase(queueRepo, ingestor)

	slog.Info("Worker started", "poll_delay", cfg.WorkerPollDelay.String())
	for {
		select {
		case <-ctx.Done():
			slog.Info("Worker shutting down")
			return
		case <-time.After(cfg.WorkerPollDelay):
		}

		if size, err := queueRepo.Size(ctx); err == nil {
			metrics.JobsInQueue.Set(float64(size))
		}

		if err := worker.ProcessJobFromQueue(ctx); err != nil {
			// Job failures are logged and the worker keeps polling; only
			// shutdown stops the loop.
			slog.Error("Ingest job processing failed", "error", err)
		}
	}
}
