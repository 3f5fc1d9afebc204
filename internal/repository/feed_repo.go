package repository

import (
	"context"

	"github.com/user/stocknews-service/internal/entity"
)

// FeedRepository defines the contract for fetching one page of the remote
// news feed.
type FeedRepository interface {
	// FetchPage issues a single paginated request. Window bounds are
	// translated to epoch-second query parameters when present. Transient
	// failures are retried internally with backoff; once the retry budget
	// is spent the error wraps ErrFetchExhausted.
	FetchPage(ctx context.Context, page, limit int, window entity.FetchWindow) (*entity.FeedPage, error)
}
