package repository

import "context"

// ContentEnricher fetches the body text of an article page for feed items
// that arrive without content. Best-effort: a failed enrichment keeps the
// record with its empty body.
type ContentEnricher interface {
	Enrich(ctx context.Context, url string) (string, error)
}
