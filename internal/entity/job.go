package entity

import "time"

// IngestJob is one queued ingestion request: crawl a time window and
// persist whatever is new. Jobs travel through the queue as JSON.
type IngestJob struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	PageSize    int       `json:"page_size"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Window returns the fetch window this job describes.
func (j *IngestJob) Window() FetchWindow {
	return FetchWindow{Start: j.Start, End: j.End, PageSize: j.PageSize}
}
