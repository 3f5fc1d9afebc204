package entity

import (
	"slices"
	"time"
)

// ArticleRecord is the canonical form of one news feed item. NewsID is the
// source's unique business key. Records are immutable once produced by
// normalization.
type ArticleRecord struct {
	NewsID       int64
	URL          string
	Title        string
	Content      string
	Summary      string
	Keyword      []string
	PublishAt    time.Time
	CategoryName string
	CategoryID   int64
}

// SameContent reports whether two records describe the same article even
// when their news IDs differ. The comparison covers the full substantive
// tuple (url, title, content, keyword, publish_at).
func (a *ArticleRecord) SameContent(b *ArticleRecord) bool {
	return a.URL == b.URL &&
		a.Title == b.Title &&
		a.Content == b.Content &&
		slices.Equal(a.Keyword, b.Keyword) &&
		a.PublishAt.Equal(b.PublishAt)
}
