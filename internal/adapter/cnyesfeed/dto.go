package cnyesfeed

import "github.com/user/stocknews-service/internal/entity"

// feedResponse mirrors the wire shape of the headline list endpoint:
// {"items": {"total": N, "data": [...]}}.
type feedResponse struct {
	Items feedItems `json:"items"`
}

type feedItems struct {
	Total int        `json:"total"`
	Data  []feedItem `json:"data"`
}

type feedItem struct {
	NewsID       int64    `json:"newsId"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Summary      string   `json:"summary"`
	Keyword      []string `json:"keyword"`
	PublishAt    int64    `json:"publishAt"`
	CategoryName string   `json:"categoryName"`
	CategoryID   int64    `json:"categoryId"`
}

func (r *feedResponse) toPage() *entity.FeedPage {
	items := make([]entity.FeedItem, 0, len(r.Items.Data))
	for _, item := range r.Items.Data {
		items = append(items, entity.FeedItem{
			NewsID:       item.NewsID,
			Title:        item.Title,
			Content:      item.Content,
			Summary:      item.Summary,
			Keyword:      item.Keyword,
			PublishAt:    item.PublishAt,
			CategoryName: item.CategoryName,
			CategoryID:   item.CategoryID,
		})
	}
	return &entity.FeedPage{Total: r.Items.Total, Items: items}
}
