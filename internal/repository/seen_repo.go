package repository

import (
	"context"
	"time"
)

// SeenRepository is a fast-path cache of recently ingested news IDs. It is
// advisory only: a cache miss or a cache error always falls through to the
// store's own dedup checks.
type SeenRepository interface {
	// MarkSeen records a news ID with an expiry.
	MarkSeen(ctx context.Context, newsID int64, expiry time.Duration) error
	// FilterSeen returns the subset of the given IDs present in the cache.
	FilterSeen(ctx context.Context, newsIDs []int64) (map[int64]struct{}, error)
}
