package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/user/stocknews-service/internal/entity"
	"github.com/user/stocknews-service/internal/repository"
)

const ingestQueueKey = "ingest:jobs"

// JobQueueRepoImpl provides a concrete implementation of the
// JobQueueRepository interface using a Redis list. Jobs are stored as JSON.
type JobQueueRepoImpl struct {
	client *redis.Client
}

// NewJobQueueRepo creates a new instance of JobQueueRepoImpl.
func NewJobQueueRepo(client *redis.Client) *JobQueueRepoImpl {
	return &JobQueueRepoImpl{client: client}
}

// Push adds a job to the left side of the list (acting as a queue).
func (r *JobQueueRepoImpl) Push(ctx context.Context, job *entity.IngestJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encoding ingest job: %w", err)
	}
	return r.client.LPush(ctx, ingestQueueKey, data).Err()
}

// Pop removes and returns a job from the right side of the list. An empty
// list maps to ErrQueueEmpty.
func (r *JobQueueRepoImpl) Pop(ctx context.Context) (*entity.IngestJob, error) {
	data, err := r.client.RPop(ctx, ingestQueueKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrQueueEmpty
		}
		return nil, err
	}

	var job entity.IngestJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("decoding ingest job: %w", err)
	}
	return &job, nil
}

// Size returns the current number of queued jobs.
func (r *JobQueueRepoImpl) Size(ctx context.Context) (int64, error) {
	return r.client.LLen(ctx, ingestQueueKey).Result()
}
