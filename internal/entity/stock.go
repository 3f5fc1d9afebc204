package entity

// StockEntity is one catalog record: a listed security with its industry
// and market segment.
type StockEntity struct {
	Code     string
	Name     string
	Industry string
	Market   string
}

// Key returns the composite identity used to accumulate mention counts.
func (e StockEntity) Key() StockKey {
	return StockKey{Code: e.Code, Name: e.Name, Industry: e.Industry}
}

// StockKey is the composite key (code, name, industry) of a mention count.
type StockKey struct {
	Code     string
	Name     string
	Industry string
}

// MentionCount is one aggregated mention tally, produced per run and
// consumed immediately; it is never persisted.
type MentionCount struct {
	Code     string `json:"stock_code"`
	Name     string `json:"stock_name"`
	Industry string `json:"industry"`
	Count    int    `json:"count"`
}
