package repository

import "errors"

var (
	// ErrFetchExhausted is returned by FeedRepository once the bounded
	// retry budget for a page is spent. It is fatal to the current crawl.
	ErrFetchExhausted = errors.New("feed fetch retries exhausted")

	// ErrMalformedFeedItem marks a feed item missing a required field.
	// The item is skipped; the page continues.
	ErrMalformedFeedItem = errors.New("feed item missing required field")

	// ErrQueueEmpty is returned by JobQueueRepository.Pop when there is
	// no job to process. An empty queue is a normal state.
	ErrQueueEmpty = errors.New("job queue is empty")
)
