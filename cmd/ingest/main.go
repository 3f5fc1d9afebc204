package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/user/stocknews-service/internal/adapter/cnyesfeed"
	"github.com/user/stocknews-service/internal/adapter/postgres"
	"github.com/user/stocknews-service/internal/adapter/twse"
	"github.com/user/stocknews-service/internal/entity"
	"github.com/user/stocknews-service/internal/pathcfg"
	"github.com/user/stocknews-service/internal/usecase"
	"github.com/user/stocknews-service/pkg/config"
	"github.com/user/stocknews-service/pkg/logger"
	"github.com/user/stocknews-service/pkg/metrics"
)

const timestampLayout = "2006-01-02 15:04:05"

func main() {
	var (
		startFlag      = flag.String("start", "", "window start, local time, YYYY-MM-DD HH:MM:SS (required)")
		endFlag        = flag.String("end", "", "window end, local time, YYYY-MM-DD HH:MM:SS (required)")
		pageSize       = flag.Int("page-size", 30, "feed items requested per page")
		retryLimit     = flag.Int("retry-limit", 5, "attempts per page before the crawl fails")
		topN           = flag.Int("top", 10, "number of top mentioned stocks to report")
		refreshCatalog = flag.Bool("refresh-catalog", false, "re-scrape the stock list before the run")
		deadline       = flag.Duration("deadline", 0, "total wall-clock budget for the run (0 = unlimited)")
	)
	flag.Parse()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger.Init(os.Stdout, logLevel)
	metrics.Init()

	window, err := parseWindow(*startFlag, *endFlag, *pageSize)
	if err != nil {
		slog.Error("Invalid window", "error", err)
		os.Exit(2)
	}

	ctx := context.Background()
	if *deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *deadline)
		defer cancel()
	}

	pgConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
	dbpool, err := pgxpool.New(ctx, pgConnString)
	if err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()

	csvPath := resolveCatalogPath(cfg)
	if *refreshCatalog {
		if err := downloadCatalog(ctx, csvPath); err != nil {
			slog.Error("Stock list download failed", "error", err)
			os.Exit(1)
		}
	}

	politeness := cnyesfeed.NewRandomPoliteness()
	feedClient := cnyesfeed.NewClient(cfg.FeedBaseURL, *retryLimit, politeness)
	crawler := usecase.NewCrawlUseCase(feedClient, politeness, nil)
	ingestor := usecase.NewIngestUseCase(crawler, postgres.NewArticleStore(dbpool), nil)

	report, runErr := ingestor.Run(ctx, window)
	slog.Info("Run report",
		"fetched", report.TotalFetched,
		"skipped_as_duplicate", report.DuplicatesSkipped,
		"inserted", report.Inserted,
	)
	if runErr != nil {
		slog.Error("Run failed",
			"failed_page", report.FailedPage,
			"failed_batch", report.FailedBatch,
			"error", runErr,
		)
		os.Exit(1)
	}

	reportMentions(ctx, dbpool, cfg, window, csvPath, *topN)
}

func parseWindow(start, end string, pageSize int) (entity.FetchWindow, error) {
	if start == "" || end == "" {
		return entity.FetchWindow{}, fmt.Errorf("-start and -end are required")
	}
	startTime, err := time.ParseInLocation(timestampLayout, start, time.Local)
	if err != nil {
		return entity.FetchWindow{}, fmt.Errorf("parsing -start: %w", err)
	}
	endTime, err := time.ParseInLocation(timestampLayout, end, time.Local)
	if err != nil {
		return entity.FetchWindow{}, fmt.Errorf("parsing -end: %w", err)
	}
	return entity.FetchWindow{Start: startTime, End: endTime, PageSize: pageSize}, nil
}

func resolveCatalogPath(cfg *config.Config) string {
	if cfg.PathsFile == "" {
		return ""
	}
	paths, err := pathcfg.Load(cfg.PathsFile)
	if err != nil {
		slog.Warn("Failed to load path config", "error", err)
		return ""
	}
	if err := paths.Initialize(); err != nil {
		slog.Warn("Failed to initialize configured paths", "error", err)
	}
	if csvPath, ok := paths.FilePath("stocks_list_path"); ok {
		return csvPath
	}
	return ""
}

func downloadCatalog(ctx context.Context, csvPath string) error {
	if csvPath == "" {
		return fmt.Errorf("no stocks_list_path configured; set PATHS_FILE")
	}
	entities, err := twse.NewCatalog().List(ctx)
	if err != nil {
		return err
	}
	if err := twse.SaveCSV(csvPath, entities); err != nil {
		return err
	}
	slog.Info("Stock list downloaded", "path", csvPath, "entities", len(entities))
	return nil
}

// reportMentions is best-effort analytics over what the window now holds in
// the store; a missing catalog only skips the report.
func reportMentions(ctx context.Context, dbpool *pgxpool.Pool, cfg *config.Config, window entity.FetchWindow, csvPath string, topN int) {
	if csvPath == "" {
		slog.Info("No stock list configured, skipping mention report")
		return
	}
	if _, err := os.Stat(csvPath); err != nil {
		slog.Info("Stock list file not found, skipping mention report", "path", csvPath)
		return
	}

	storeRepo := postgres.NewArticleStore(dbpool)
	articles, err := storeRepo.FindBetween(ctx, window.Start, window.End)
	if err != nil {
		slog.Warn("Failed to load stored articles for mention report", "error", err)
		return
	}

	analyzer := usecase.NewMentionUseCase(twse.NewCSVCatalog(csvPath), cfg.MarketSegment)
	counts, err := analyzer.Analyze(ctx, articles)
	if err != nil {
		slog.Warn("Mention analysis failed", "error", err)
		return
	}

	for _, m := range usecase.TopMentions(counts, topN) {
		slog.Info("Top mention",
			"stock_code", m.Code, "stock_name", m.Name,
			"industry", m.Industry, "count", m.Count)
	}
}
