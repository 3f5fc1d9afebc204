package entity

// FeedItem is one raw item as decoded from the news feed payload. Fields
// are optional at this stage; required-field validation happens during
// normalization, per item rather than per page.
type FeedItem struct {
	NewsID       int64
	Title        string
	Content      string
	Summary      string
	Keyword      []string
	PublishAt    int64 // epoch seconds
	CategoryName string
	CategoryID   int64
}

// FeedPage is one page of the paginated feed. Total is the feed's own
// estimate of matching items and is best-effort: a zero Total must not
// abort a crawl.
type FeedPage struct {
	Total int
	Items []FeedItem
}
