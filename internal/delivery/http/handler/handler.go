package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/user/stocknews-service/internal/delivery/http/request"
	"github.com/user/stocknews-service/internal/delivery/http/response"
	"github.com/user/stocknews-service/internal/entity"
	"github.com/user/stocknews-service/internal/repository"
	"github.com/user/stocknews-service/internal/usecase"
	"github.com/user/stocknews-service/pkg/metrics"
	"github.com/user/stocknews-service/pkg/utils"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	defaultPageSize = 30
	defaultTopN     = 10
)

type Handler struct {
	queueRepo repository.JobQueueRepository
	storeRepo repository.ArticleStoreRepository
	analyzer  usecase.MentionAnalyzer
	pageSize  int
}

// NewHandler creates the API handler. pageSize is the default number of
// feed items per page for jobs that do not specify one.
func NewHandler(
	queueRepo repository.JobQueueRepository,
	storeRepo repository.ArticleStoreRepository,
	analyzer usecase.MentionAnalyzer,
	pageSize int,
) *Handler {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Handler{
		queueRepo: queueRepo,
		storeRepo: storeRepo,
		analyzer:  analyzer,
		pageSize:  pageSize,
	}
}

func (h *Handler) HandleSubmitIngest(w http.ResponseWriter, r *http.Request) {
	var req request.IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	start, err := time.ParseInLocation(timestampLayout, req.StartTime, time.Local)
	if err != nil {
		h.writeJSONError(w, "Invalid start_time, expected YYYY-MM-DD HH:MM:SS", http.StatusBadRequest)
		return
	}
	end, err := time.ParseInLocation(timestampLayout, req.EndTime, time.Local)
	if err != nil {
		h.writeJSONError(w, "Invalid end_time, expected YYYY-MM-DD HH:MM:SS", http.StatusBadRequest)
		return
	}
	if start.After(end) {
		h.writeJSONError(w, "start_time must not be after end_time", http.StatusBadRequest)
		return
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = h.pageSize
	}

	job := &entity.IngestJob{
		Start:       start,
		End:         end,
		PageSize:    pageSize,
		SubmittedAt: time.Now(),
	}
	if err := h.queueRepo.Push(r.Context(), job); err != nil {
		slog.Error("Failed to enqueue ingest job", "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if size, err := h.queueRepo.Size(r.Context()); err == nil {
		metrics.JobsInQueue.Set(float64(size))
	}

	resp := response.IngestResponse{
		Status:  "success",
		Message: "Window submitted for ingestion",
		JobID:   utils.HashKey(req.StartTime + "|" + req.EndTime),
	}
	h.writeJSON(w, http.StatusAccepted, resp)
}

func (h *Handler) HandleGetMentions(w http.ResponseWriter, r *http.Request) {
	startParam := r.URL.Query().Get("start")
	endParam := r.URL.Query().Get("end")

	start, err := time.ParseInLocation(timestampLayout, startParam, time.Local)
	if err != nil {
		h.writeJSONError(w, "Invalid start, expected YYYY-MM-DD HH:MM:SS", http.StatusBadRequest)
		return
	}
	end, err := time.ParseInLocation(timestampLayout, endParam, time.Local)
	if err != nil {
		h.writeJSONError(w, "Invalid end, expected YYYY-MM-DD HH:MM:SS", http.StatusBadRequest)
		return
	}

	topN := defaultTopN
	if topParam := r.URL.Query().Get("top"); topParam != "" {
		n, err := strconv.Atoi(topParam)
		if err != nil || n < 1 {
			h.writeJSONError(w, "Invalid top, expected a positive integer", http.StatusBadRequest)
			return
		}
		topN = n
	}

	articles, err := h.storeRepo.FindBetween(r.Context(), start, end)
	if err != nil {
		slog.Error("Failed to load stored articles", "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	counts, err := h.analyzer.Analyze(r.Context(), articles)
	if err != nil {
		slog.Error("Failed to analyze mentions", "error", err)
		h.writeJSONError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := response.MentionsResponse{
		Start:      startParam,
		End:        endParam,
		Articles:   len(articles),
		Top:        usecase.TopMentions(counts, topN),
		Industries: usecase.IndustryCounts(counts),
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeJSONError(w http.ResponseWriter, message string, status int) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
