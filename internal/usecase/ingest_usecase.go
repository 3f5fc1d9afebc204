package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/user/stocknews-service/internal/entity"
	"github.com/user/stocknews-service/internal/repository"
	"github.com/user/stocknews-service/pkg/metrics"
)

// seenExpiry bounds how long a news ID stays in the fast-path cache.
const seenExpiry = 48 * time.Hour

// Ingestor defines the deduplicating persistence gateway and the full
// crawl-then-persist run.
type Ingestor interface {
	// InsertNew runs both dedup phases (identity key, then exact content
	// tuple) and batch-inserts only the net-new records, returning their
	// store-assigned IDs. Calling it again with the same set returns an
	// empty slice.
	InsertNew(ctx context.Context, articles []*entity.ArticleRecord) ([]int64, error)
	// Run crawls the window and persists the result, reporting totals and
	// the failing page or batch on a fatal error.
	Run(ctx context.Context, window entity.FetchWindow) (*entity.RunReport, error)
}

type ingestUseCase struct {
	crawler   Crawler
	storeRepo repository.ArticleStoreRepository
	seenRepo  repository.SeenRepository // optional fast path, may be nil
}

// NewIngestUseCase creates a new instance of the ingest use case.
func NewIngestUseCase(
	crawler Crawler,
	storeRepo repository.ArticleStoreRepository,
	seenRepo repository.SeenRepository,
) Ingestor {
	return &ingestUseCase{
		crawler:   crawler,
		storeRepo: storeRepo,
		seenRepo:  seenRepo,
	}
}

func (uc *ingestUseCase) InsertNew(ctx context.Context, articles []*entity.ArticleRecord) ([]int64, error) {
	if len(articles) == 0 {
		return []int64{}, nil
	}

	candidates := uc.filterSeenCache(ctx, articles)

	// Identity phase: drop candidates whose news_id already exists.
	existing, err := uc.storeRepo.FindExistingNewsIDs(ctx, newsIDs(candidates))
	if err != nil {
		return nil, fmt.Errorf("identity dedup lookup: %w", err)
	}
	survivors := make([]*entity.ArticleRecord, 0, len(candidates))
	for _, a := range candidates {
		if _, ok := existing[a.NewsID]; ok {
			slog.Info("Duplicate news_id, skipping", "news_id", a.NewsID)
			metrics.DuplicatesSkippedTotal.WithLabelValues("identity").Inc()
			continue
		}
		survivors = append(survivors, a)
	}

	// Content phase: defensive check for the same article under a
	// different news_id.
	fresh := make([]*entity.ArticleRecord, 0, len(survivors))
	for _, a := range survivors {
		found, err := uc.storeRepo.FindByContent(ctx, a)
		if err != nil {
			return nil, fmt.Errorf("content dedup lookup for news %d: %w", a.NewsID, err)
		}
		if found {
			slog.Info("Duplicate document found with same content", "url", a.URL)
			metrics.DuplicatesSkippedTotal.WithLabelValues("content").Inc()
			continue
		}
		fresh = append(fresh, a)
	}

	if len(fresh) == 0 {
		slog.Info("No new documents to insert; all candidates are duplicates")
		return []int64{}, nil
	}

	ids, err := uc.storeRepo.InsertMany(ctx, fresh)
	if err != nil {
		return nil, fmt.Errorf("batch insert of %d articles: %w", len(fresh), err)
	}
	metrics.ArticlesInsertedTotal.Add(float64(len(ids)))
	slog.Info("Inserted new documents", "count", len(ids))

	uc.markSeen(ctx, fresh)
	return ids, nil
}

func (uc *ingestUseCase) Run(ctx context.Context, window entity.FetchWindow) (*entity.RunReport, error) {
	start := time.Now()
	report := &entity.RunReport{}

	articles, crawlErr := uc.crawler.FetchAll(ctx, window)
	report.TotalFetched = len(articles)
	if crawlErr != nil {
		report.FailedPage = FailedPageOf(crawlErr)
		return report, fmt.Errorf("crawl failed: %w", crawlErr)
	}

	ids, err := uc.InsertNew(ctx, articles)
	if err != nil {
		report.FailedBatch = true
		return report, fmt.Errorf("persist failed: %w", err)
	}
	report.Inserted = len(ids)
	report.DuplicatesSkipped = report.TotalFetched - report.Inserted

	metrics.IngestDuration.Observe(time.Since(start).Seconds())
	slog.Info("Ingest run complete",
		"fetched", report.TotalFetched,
		"skipped_as_duplicate", report.DuplicatesSkipped,
		"inserted", report.Inserted,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}

// filterSeenCache drops candidates present in the advisory cache. Cache
// errors degrade to the store's own checks.
func (uc *ingestUseCase) filterSeenCache(ctx context.Context, articles []*entity.ArticleRecord) []*entity.ArticleRecord {
	if uc.seenRepo == nil {
		return articles
	}
	seen, err := uc.seenRepo.FilterSeen(ctx, newsIDs(articles))
	if err != nil {
		slog.Warn("Seen-cache lookup failed, falling through to store checks", "error", err)
		return articles
	}
	if len(seen) == 0 {
		return articles
	}
	kept := make([]*entity.ArticleRecord, 0, len(articles))
	for _, a := range articles {
		if _, ok := seen[a.NewsID]; ok {
			slog.Info("News ID found in seen cache, skipping", "news_id", a.NewsID)
			metrics.DuplicatesSkippedTotal.WithLabelValues("cache").Inc()
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

func (uc *ingestUseCase) markSeen(ctx context.Context, articles []*entity.ArticleRecord) {
	if uc.seenRepo == nil {
		return
	}
	for _, a := range articles {
		if err := uc.seenRepo.MarkSeen(ctx, a.NewsID, seenExpiry); err != nil {
			// Non-critical: the store's unique key remains the backstop.
			slog.Warn("Failed to mark news ID as seen", "news_id", a.NewsID, "error", err)
			return
		}
	}
}

func newsIDs(articles []*entity.ArticleRecord) []int64 {
	ids := make([]int64, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.NewsID)
	}
	return ids
}
