package repository

import (
	"context"

	"github.com/user/stocknews-service/internal/entity"
)

// JobQueueRepository defines the interface for a FIFO queue of ingest jobs.
type JobQueueRepository interface {
	// Push adds a job to the end of the queue.
	Push(ctx context.Context, job *entity.IngestJob) error
	// Pop removes and returns the job at the front of the queue, or
	// ErrQueueEmpty when there is none.
	Pop(ctx context.Context) (*entity.IngestJob, error)
	// Size returns the current number of queued jobs.
	Size(ctx context.Context) (int64, error)
}
