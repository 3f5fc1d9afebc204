package response

import "github.com/user/stocknews-service/internal/entity"

type IngestResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	JobID   string `json:"job_id"`
}

// MentionsResponse carries aggregated mention counts for a stored window.
type MentionsResponse struct {
	Start      string                `json:"start"`
	End        string                `json:"end"`
	Articles   int                   `json:"articles"`
	Top        []entity.MentionCount `json:"top"`
	Industries map[string]int        `json:"industries"`
}
