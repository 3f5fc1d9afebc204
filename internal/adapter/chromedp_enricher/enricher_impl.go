package chromedp_enricher

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/user/stocknews-service/internal/repository"
)

const defaultBodySelector = "article"

// ChromedpEnricher fetches article pages with a headless browser and
// extracts the body text. Used for feed items whose content is absent from
// the feed payload (paywalled or script-rendered articles).
type ChromedpEnricher struct {
	allocatorPool *sync.Pool
	bodySelector  string
	timeout       time.Duration
}

// NewChromedpEnricher creates a new enricher. bodySelector is the CSS
// selector of the article body container; empty selects the default.
func NewChromedpEnricher(bodySelector string, maxConcurrency int, pageLoadTimeout time.Duration) (repository.ContentEnricher, error) {
	if bodySelector == "" {
		bodySelector = defaultBodySelector
	}

	pool := &sync.Pool{
		New: func() interface{} {
			opts := append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.Flag("headless", true),
				chromedp.Flag("disable-gpu", true),
				chromedp.Flag("no-sandbox", true),
				chromedp.Flag("disable-dev-shm-usage", true),
			)
			allocCtx, _ := chromedp.NewExecAllocator(context.Background(), opts...)
			return allocCtx
		},
	}

	// Pre-warm the pool
	for i := 0; i < maxConcurrency; i++ {
		allocCtx := pool.Get().(context.Context)
		pool.Put(allocCtx)
	}

	return &ChromedpEnricher{
		allocatorPool: pool,
		bodySelector:  bodySelector,
		timeout:       pageLoadTimeout,
	}, nil
}

// Enrich navigates to the article page and returns the trimmed body text.
func (e *ChromedpEnricher) Enrich(ctx context.Context, url string) (string, error) {
	allocCtx := e.allocatorPool.Get().(context.Context)
	defer e.allocatorPool.Put(allocCtx)

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	taskCtx, cancel = context.WithTimeout(taskCtx, e.timeout)
	defer cancel()

	var body string
	err := chromedp.Run(taskCtx,
		chromedp.Navigate(url),
		chromedp.Text(e.bodySelector, &body, chromedp.ByQuery, chromedp.NodeVisible),
	)
	if err != nil {
		return "", fmt.Errorf("extracting article body from %s: %w", url, err)
	}

	// Propagate cancellation from the outer crawl even though the browser
	// task ran on its own context.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}

	return strings.TrimSpace(body), nil
}
