package request

// IngestRequest submits a time window for crawling and persistence.
// Timestamps use second-precision local time, "2006-01-02 15:04:05".
type IngestRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	PageSize  int    `json:"page_size"`
}
