package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/user/stocknews-service/internal/entity"
	"github.com/user/stocknews-service/internal/repository"
)

// fakeFeedRepo serves scripted pages and records which pages were asked for.
type fakeFeedRepo struct {
	pages    map[int]*entity.FeedPage
	pageErrs map[int]error
	calls    []int
}

func (f *fakeFeedRepo) FetchPage(_ context.Context, page, _ int, _ entity.FetchWindow) (*entity.FeedPage, error) {
	f.calls = append(f.calls, page)
	if err, ok := f.pageErrs[page]; ok {
		return nil, err
	}
	if p, ok := f.pages[page]; ok {
		return p, nil
	}
	return &entity.FeedPage{}, nil
}

// stillPoliteness satisfies Politeness with zero delays and a fixed header.
type stillPoliteness struct{}

func (stillPoliteness) IdentityHeaders() map[string]string { return map[string]string{"User-Agent": "test"} }
func (stillPoliteness) RetryBackoff() time.Duration        { return 0 }
func (stillPoliteness) PageDelay() time.Duration           { return 0 }

// fakeStore is an in-memory ArticleStoreRepository keyed by news_id.
type fakeStore struct {
	byNewsID   map[int64]*entity.ArticleRecord
	nextID     int64
	lookupErr  error
	insertErr  error
	insertions int
}

func newFakeStore() *fakeStore {
	return &fakeStore{byNewsID: make(map[int64]*entity.ArticleRecord)}
}

func (s *fakeStore) FindExistingNewsIDs(_ context.Context, newsIDs []int64) (map[int64]struct{}, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	existing := make(map[int64]struct{})
	for _, id := range newsIDs {
		if _, ok := s.byNewsID[id]; ok {
			existing[id] = struct{}{}
		}
	}
	return existing, nil
}

func (s *fakeStore) FindByContent(_ context.Context, article *entity.ArticleRecord) (bool, error) {
	if s.lookupErr != nil {
		return false, s.lookupErr
	}
	for _, stored := range s.byNewsID {
		if stored.SameContent(article) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) InsertMany(_ context.Context, articles []*entity.ArticleRecord) ([]int64, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	s.insertions++
	ids := make([]int64, 0, len(articles))
	for _, a := range articles {
		if _, ok := s.byNewsID[a.NewsID]; ok {
			continue // unique-key conflict is a no-op
		}
		s.nextID++
		s.byNewsID[a.NewsID] = a
		ids = append(ids, s.nextID)
	}
	return ids, nil
}

func (s *fakeStore) FindByNewsIDs(_ context.Context, newsIDs []int64) ([]*entity.ArticleRecord, error) {
	var found []*entity.ArticleRecord
	for _, id := range newsIDs {
		if a, ok := s.byNewsID[id]; ok {
			found = append(found, a)
		}
	}
	return found, nil
}

func (s *fakeStore) FindBetween(_ context.Context, start, end time.Time) ([]*entity.ArticleRecord, error) {
	var found []*entity.ArticleRecord
	for _, a := range s.byNewsID {
		if !a.PublishAt.Before(start) && !a.PublishAt.After(end) {
			found = append(found, a)
		}
	}
	return found, nil
}

func (s *fakeStore) DeleteByNewsIDs(_ context.Context, newsIDs []int64) (int64, error) {
	var deleted int64
	for _, id := range newsIDs {
		if _, ok := s.byNewsID[id]; ok {
			delete(s.byNewsID, id)
			deleted++
		}
	}
	return deleted, nil
}

// fakeSeen is an in-memory SeenRepository.
type fakeSeen struct {
	seen map[int64]struct{}
	err  error
}

func newFakeSeen(ids ...int64) *fakeSeen {
	s := &fakeSeen{seen: make(map[int64]struct{})}
	for _, id := range ids {
		s.seen[id] = struct{}{}
	}
	return s
}

func (s *fakeSeen) MarkSeen(_ context.Context, newsID int64, _ time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.seen[newsID] = struct{}{}
	return nil
}

func (s *fakeSeen) FilterSeen(_ context.Context, newsIDs []int64) (map[int64]struct{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	found := make(map[int64]struct{})
	for _, id := range newsIDs {
		if _, ok := s.seen[id]; ok {
			found[id] = struct{}{}
		}
	}
	return found, nil
}

// fakeCrawler returns a preset result for Run tests.
type fakeCrawler struct {
	articles []*entity.ArticleRecord
	err      error
}

func (c *fakeCrawler) FetchAll(context.Context, entity.FetchWindow) ([]*entity.ArticleRecord, error) {
	return c.articles, c.err
}

// fakeQueue hands out scripted jobs.
type fakeQueue struct {
	jobs []*entity.IngestJob
}

func (q *fakeQueue) Push(_ context.Context, job *entity.IngestJob) error {
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *fakeQueue) Pop(context.Context) (*entity.IngestJob, error) {
	if len(q.jobs) == 0 {
		return nil, repository.ErrQueueEmpty
	}
	job := q.jobs[0]
	q.jobs = q.jobs[1:]
	return job, nil
}

func (q *fakeQueue) Size(context.Context) (int64, error) {
	return int64(len(q.jobs)), nil
}

var errStoreDown = errors.New("store unavailable")

func mustParse(value string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04:05", value, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func feedItemAt(newsID int64, publishAt time.Time) entity.FeedItem {
	return entity.FeedItem{
		NewsID:       newsID,
		Title:        fmt.Sprintf("headline %d", newsID),
		Content:      fmt.Sprintf("body %d", newsID),
		Summary:      "summary",
		Keyword:      []string{"stocks"},
		PublishAt:    publishAt.Unix(),
		CategoryName: "headline",
		CategoryID:   1,
	}
}

func articleAt(newsID int64, publishAt time.Time) *entity.ArticleRecord {
	return &entity.ArticleRecord{
		NewsID:    newsID,
		URL:       fmt.Sprintf("https://news.cnyes.com/news/id/%d", newsID),
		Title:     fmt.Sprintf("headline %d", newsID),
		Content:   fmt.Sprintf("body %d", newsID),
		Keyword:   []string{"stocks"},
		PublishAt: publishAt.Truncate(time.Second),
	}
}
