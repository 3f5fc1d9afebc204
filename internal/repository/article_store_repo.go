package repository

import (
	"context"
	"time"

	"github.com/user/stocknews-service/internal/entity"
)

// ArticleStoreRepository defines the document-store contract for article
// persistence. The dedup lookups and the insert are not required to be one
// transaction; the store's unique key on news_id is the backstop for the
// concurrent-insert race, and a conflicting row inside InsertMany is a
// no-op rather than an error.
type ArticleStoreRepository interface {
	// FindExistingNewsIDs returns the subset of the given news IDs that
	// already exist in the store.
	FindExistingNewsIDs(ctx context.Context, newsIDs []int64) (map[int64]struct{}, error)
	// FindByContent reports whether a document with the exact tuple
	// (url, title, content, keyword, publish_at) already exists.
	FindByContent(ctx context.Context, article *entity.ArticleRecord) (bool, error)
	// InsertMany inserts the batch and returns the store-assigned IDs of
	// the documents actually inserted.
	InsertMany(ctx context.Context, articles []*entity.ArticleRecord) ([]int64, error)

	// Operational pass-through reads and deletes; no dedup logic.
	FindByNewsIDs(ctx context.Context, newsIDs []int64) ([]*entity.ArticleRecord, error)
	FindBetween(ctx context.Context, start, end time.Time) ([]*entity.ArticleRecord, error)
	DeleteByNewsIDs(ctx context.Context, newsIDs []int64) (int64, error)
}
