package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/stocknews-service/internal/entity"
	"github.com/user/stocknews-service/internal/repository"
	"github.com/user/stocknews-service/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.Init()
	os.Exit(m.Run())
}

type fakeQueue struct {
	jobs    []*entity.IngestJob
	pushErr error
}

func (q *fakeQueue) Push(_ context.Context, job *entity.IngestJob) error {
	if q.pushErr != nil {
		return q.pushErr
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *fakeQueue) Pop(context.Context) (*entity.IngestJob, error) {
	return nil, repository.ErrQueueEmpty
}

func (q *fakeQueue) Size(context.Context) (int64, error) {
	return int64(len(q.jobs)), nil
}

type fakeStore struct {
	articles []*entity.ArticleRecord
	err      error
}

func (s *fakeStore) FindExistingNewsIDs(context.Context, []int64) (map[int64]struct{}, error) {
	return nil, nil
}
func (s *fakeStore) FindByContent(context.Context, *entity.ArticleRecord) (bool, error) {
	return false, nil
}
func (s *fakeStore) InsertMany(context.Context, []*entity.ArticleRecord) ([]int64, error) {
	return nil, nil
}
func (s *fakeStore) FindByNewsIDs(context.Context, []int64) ([]*entity.ArticleRecord, error) {
	return nil, nil
}
func (s *fakeStore) FindBetween(context.Context, time.Time, time.Time) ([]*entity.ArticleRecord, error) {
	return s.articles, s.err
}
func (s *fakeStore) DeleteByNewsIDs(context.Context, []int64) (int64, error) {
	return 0, nil
}

type fakeAnalyzer struct {
	counts map[entity.StockKey]int
	err    error
}

func (a *fakeAnalyzer) Analyze(context.Context, []*entity.ArticleRecord) (map[entity.StockKey]int, error) {
	return a.counts, a.err
}

func TestHandleSubmitIngest_AcceptsValidWindow(t *testing.T) {
	queue := &fakeQueue{}
	h := NewHandler(queue, &fakeStore{}, &fakeAnalyzer{}, 30)

	body := `{"start_time":"2025-07-01 00:00:00","end_time":"2025-07-02 00:00:00","page_size":50}`
	req := httptest.NewRequest(http.MethodPost, "/api/ingest", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleSubmitIngest(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, 50, queue.jobs[0].PageSize)
	assert.True(t, queue.jobs[0].End.After(queue.jobs[0].Start))

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp["status"])
	assert.NotEmpty(t, resp["job_id"])
}

func TestHandleSubmitIngest_DefaultsPageSize(t *testing.T) {
	queue := &fakeQueue{}
	h := NewHandler(queue, &fakeStore{}, &fakeAnalyzer{}, 30)

	body := `{"start_time":"2025-07-01 00:00:00","end_time":"2025-07-02 00:00:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/ingest", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleSubmitIngest(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, queue.jobs, 1)
	assert.Equal(t, defaultPageSize, queue.jobs[0].PageSize)
}

func TestHandleSubmitIngest_RejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"bad start_time", `{"start_time":"yesterday","end_time":"2025-07-02 00:00:00"}`},
		{"bad end_time", `{"start_time":"2025-07-01 00:00:00","end_time":"tomorrow"}`},
		{"inverted window", `{"start_time":"2025-07-02 00:00:00","end_time":"2025-07-01 00:00:00"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			queue := &fakeQueue{}
			h := NewHandler(queue, &fakeStore{}, &fakeAnalyzer{}, 30)

			req := httptest.NewRequest(http.MethodPost, "/api/ingest", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			h.HandleSubmitIngest(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, queue.jobs, "rejected requests must not enqueue")
		})
	}
}

func TestHandleSubmitIngest_QueueFailureIsInternal(t *testing.T) {
	queue := &fakeQueue{pushErr: context.DeadlineExceeded}
	h := NewHandler(queue, &fakeStore{}, &fakeAnalyzer{}, 30)

	body := `{"start_time":"2025-07-01 00:00:00","end_time":"2025-07-02 00:00:00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/ingest", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.HandleSubmitIngest(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleGetMentions_ReturnsAggregates(t *testing.T) {
	store := &fakeStore{articles: []*entity.ArticleRecord{{NewsID: 1}, {NewsID: 2}}}
	analyzer := &fakeAnalyzer{counts: map[entity.StockKey]int{
		{Code: "2330", Name: "台積電", Industry: "半導體業"}: 2,
		{Code: "2317", Name: "鴻海", Industry: "電子零組件業"}: 1,
	}}
	h := NewHandler(&fakeQueue{}, store, analyzer, 30)

	req := httptest.NewRequest(http.MethodGet,
		"/api/mentions?start=2025-07-01+00:00:00&end=2025-07-02+00:00:00&top=1", nil)
	rec := httptest.NewRecorder()

	h.HandleGetMentions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Articles int `json:"articles"`
		Top      []struct {
			Code  string `json:"stock_code"`
			Count int    `json:"count"`
		} `json:"top"`
		Industries map[string]int `json:"industries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Articles)
	require.Len(t, resp.Top, 1, "top=1 truncates the ranking")
	assert.Equal(t, "2330", resp.Top[0].Code)
	assert.Equal(t, 2, resp.Top[0].Count)
	assert.Equal(t, 2, resp.Industries["半導體業"])
}

func TestHandleGetMentions_RejectsBadParams(t *testing.T) {
	h := NewHandler(&fakeQueue{}, &fakeStore{}, &fakeAnalyzer{}, 30)

	for _, target := range []string{
		"/api/mentions",
		"/api/mentions?start=2025-07-01+00:00:00",
		"/api/mentions?start=2025-07-01+00:00:00&end=2025-07-02+00:00:00&top=0",
		"/api/mentions?start=2025-07-01+00:00:00&end=2025-07-02+00:00:00&top=many",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		h.HandleGetMentions(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestHandleGetMentions_StoreErrorIsInternal(t *testing.T) {
	store := &fakeStore{err: context.DeadlineExceeded}
	h := NewHandler(&fakeQueue{}, store, &fakeAnalyzer{}, 30)

	req := httptest.NewRequest(http.MethodGet,
		"/api/mentions?start=2025-07-01+00:00:00&end=2025-07-02+00:00:00", nil)
	rec := httptest.NewRecorder()

	h.HandleGetMentions(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleHealthCheck(t *testing.T) {
	h := NewHandler(&fakeQueue{}, &fakeStore{}, &fakeAnalyzer{}, 30)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()

	h.HandleHealthCheck(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
