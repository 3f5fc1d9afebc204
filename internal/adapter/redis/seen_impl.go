package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const seenNewsPrefix = "news:seen:"

// SeenRepoImpl provides a concrete implementation of the SeenRepository
// interface using Redis keys with expiry.
type SeenRepoImpl struct {
	client *redis.Client
}

// NewSeenRepo creates a new instance of SeenRepoImpl.
func NewSeenRepo(client *redis.Client) *SeenRepoImpl {
	return &SeenRepoImpl{client: client}
}

func seenKey(newsID int64) string {
	return fmt.Sprintf("%s%d", seenNewsPrefix, newsID)
}

// MarkSeen records a news ID with an expiry. SETEX is atomic and sets the
// key with its TTL in one step.
func (r *SeenRepoImpl) MarkSeen(ctx context.Context, newsID int64, expiry time.Duration) error {
	return r.client.SetEx(ctx, seenKey(newsID), "1", expiry).Err()
}

// FilterSeen checks all given IDs in one pipeline round trip and returns
// the subset present in the cache.
func (r *SeenRepoImpl) FilterSeen(ctx context.Context, newsIDs []int64) (map[int64]struct{}, error) {
	seen := make(map[int64]struct{})
	if len(newsIDs) == 0 {
		return seen, nil
	}

	pipe := r.client.Pipeline()
	cmds := make(map[int64]*redis.IntCmd, len(newsIDs))
	for _, id := range newsIDs {
		cmds[id] = pipe.Exists(ctx, seenKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	for id, cmd := range cmds {
		if cmd.Val() == 1 {
			seen[id] = struct{}{}
		}
	}
	return seen, nil
}
