package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/user/stocknews-service/internal/repository"
)

// Worker defines the interface for the queue-driven ingestion process.
type Worker interface {
	ProcessJobFromQueue(ctx context.Context) error
}

type workerUseCase struct {
	queueRepo repository.JobQueueRepository
	ingestor  Ingestor
}

// NewWorkerUseCase creates a new instance of the worker use case.
func NewWorkerUseCase(queueRepo repository.JobQueueRepository, ingestor Ingestor) Worker {
	return &workerUseCase{
		queueRepo: queueRepo,
		ingestor:  ingestor,
	}
}

// ProcessJobFromQueue pops a single ingest job and runs it to completion.
// An empty queue is a normal state, not an error.
func (uc *workerUseCase) ProcessJobFromQueue(ctx context.Context) error {
	job, err := uc.queueRepo.Pop(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrQueueEmpty) {
			return nil
		}
		return fmt.Errorf("failed to pop ingest job from queue: %w", err)
	}

	slog.Info("Processing ingest job from queue",
		"start", job.Start, "end", job.End, "page_size", job.PageSize)

	report, err := uc.ingestor.Run(ctx, job.Window())
	if err != nil {
		slog.Error("Ingest job failed",
			"start", job.Start,
			"end", job.End,
			"failed_page", report.FailedPage,
			"failed_batch", report.FailedBatch,
			"error", err,
		)
		return err
	}

	slog.Info("Ingest job finished",
		"fetched", report.TotalFetched,
		"skipped_as_duplicate", report.DuplicatesSkipped,
		"inserted", report.Inserted,
	)
	return nil
}
