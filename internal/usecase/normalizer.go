package usecase

import (
	"fmt"
	"time"

	"github.com/user/stocknews-service/internal/entity"
	"github.com/user/stocknews-service/internal/repository"
)

const articleURLFormat = "https://news.cnyes.com/news/id/%d"

// normalizeItem maps one raw feed item into the canonical article record.
// newsId, title and publishAt are required; a missing one fails the item
// (not the page) with ErrMalformedFeedItem.
func normalizeItem(item entity.FeedItem) (*entity.ArticleRecord, error) {
	if item.NewsID == 0 {
		return nil, fmt.Errorf("%w: newsId", repository.ErrMalformedFeedItem)
	}
	if item.Title == "" {
		return nil, fmt.Errorf("%w: title (news %d)", repository.ErrMalformedFeedItem, item.NewsID)
	}
	if item.PublishAt == 0 {
		return nil, fmt.Errorf("%w: publishAt (news %d)", repository.ErrMalformedFeedItem, item.NewsID)
	}

	return &entity.ArticleRecord{
		NewsID:       item.NewsID,
		URL:          fmt.Sprintf(articleURLFormat, item.NewsID),
		Title:        item.Title,
		Content:      item.Content,
		Summary:      item.Summary,
		Keyword:      item.Keyword,
		PublishAt:    time.Unix(item.PublishAt, 0).Truncate(time.Second),
		CategoryName: item.CategoryName,
		CategoryID:   item.CategoryID,
	}, nil
}
