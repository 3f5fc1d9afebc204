package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/user/stocknews-service/internal/entity"
	"github.com/user/stocknews-service/internal/repository"
	"github.com/user/stocknews-service/pkg/metrics"
)

const defaultPageSize = 30

// PageError reports the feed page at which a crawl failed terminally.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

// Crawler defines the interface for the time-windowed crawl.
type Crawler interface {
	// FetchAll materializes every article inside the window. On a terminal
	// fetch failure it returns whatever was accumulated together with a
	// *PageError, never partial data disguised as success.
	FetchAll(ctx context.Context, window entity.FetchWindow) ([]*entity.ArticleRecord, error)
}

type crawlUseCase struct {
	feedRepo   repository.FeedRepository
	politeness repository.Politeness
	enricher   repository.ContentEnricher // optional, may be nil
}

// NewCrawlUseCase creates a new instance of the crawl use case.
func NewCrawlUseCase(
	feedRepo repository.FeedRepository,
	politeness repository.Politeness,
	enricher repository.ContentEnricher,
) Crawler {
	return &crawlUseCase{
		feedRepo:   feedRepo,
		politeness: politeness,
		enricher:   enricher,
	}
}

// FetchAll walks the feed page by page, strictly in order: the early-stop
// rule trusts that pages arrive in descending publish order. An item older
// than the window terminates the whole crawl; within a page, items newer
// than the window are skipped without stopping, since a single page is not
// guaranteed to be monotonic.
//
// Known limitation: if the upstream feed is ever not ordered across pages,
// in-window articles appearing after an older item are missed.
func (uc *crawlUseCase) FetchAll(ctx context.Context, window entity.FetchWindow) ([]*entity.ArticleRecord, error) {
	articles := []*entity.ArticleRecord{}
	if window.IsEmpty() {
		slog.Info("Empty fetch window, nothing to crawl",
			"start", window.Start, "end", window.End)
		return articles, nil
	}

	limit := window.PageSize
	if limit <= 0 {
		limit = defaultPageSize
	}

	for page := 1; ; page++ {
		if page > 1 {
			// Deadlines are honored between pages, never mid-request.
			if err := ctx.Err(); err != nil {
				return articles, &PageError{Page: page, Err: err}
			}
			time.Sleep(uc.politeness.PageDelay())
		}

		result, err := uc.feedRepo.FetchPage(ctx, page, limit, window)
		if err != nil {
			slog.Error("Feed page fetch failed terminally", "page", page, "error", err)
			return articles, &PageError{Page: page, Err: err}
		}
		metrics.PagesFetchedTotal.Inc()

		if page == 1 {
			// Best-effort progress estimate; a missing total never aborts.
			if result.Total > 0 {
				slog.Info("Crawl started", "estimated_total", result.Total, "limit", limit)
			} else {
				slog.Info("Crawl started without total estimate", "limit", limit)
			}
		}

		if len(result.Items) == 0 {
			break
		}

		for _, item := range result.Items {
			record, err := normalizeItem(item)
			if err != nil {
				slog.Warn("Skipping malformed feed item", "page", page, "error", err)
				continue
			}
			if record.PublishAt.After(window.End) {
				continue
			}
			if record.PublishAt.Before(window.Start) {
				slog.Info("Reached articles older than window, stopping crawl",
					"page", page, "fetched", len(articles))
				return articles, nil
			}
			uc.enrichContent(ctx, record)
			articles = append(articles, record)
			metrics.ArticlesFetchedTotal.Inc()
		}

		if len(result.Items) < limit {
			break
		}
	}

	slog.Info("Crawl finished", "fetched", len(articles))
	return articles, nil
}

func (uc *crawlUseCase) enrichContent(ctx context.Context, record *entity.ArticleRecord) {
	if uc.enricher == nil || record.Content != "" {
		return
	}
	body, err := uc.enricher.Enrich(ctx, record.URL)
	if err != nil {
		slog.Warn("Content enrichment failed, keeping empty body",
			"url", record.URL, "error", err)
		return
	}
	record.Content = body
}

// FailedPageOf extracts the page index from a crawl error, or 0.
func FailedPageOf(err error) int {
	var pageErr *PageError
	if errors.As(err, &pageErr) {
		return pageErr.Page
	}
	return 0
}
