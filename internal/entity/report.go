package entity

// RunReport summarizes one ingestion run for the caller: how much was
// fetched, how much of it was dropped as duplicate, how much was inserted,
// and where a fatal error struck if one did.
type RunReport struct {
	TotalFetched      int
	DuplicatesSkipped int
	Inserted          int
	// FailedPage is the feed page at which the crawl terminated fatally,
	// or 0 when fetching completed.
	FailedPage int
	// FailedBatch is set when the store rejected the insert batch.
	FailedBatch bool
}
