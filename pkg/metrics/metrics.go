package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	JobsInQueue         prometheus.Gauge

	FeedRequestsTotal *prometheus.CounterVec
	FeedRetriesTotal  prometheus.Counter
	PagesFetchedTotal prometheus.Counter

	ArticlesFetchedTotal   prometheus.Counter
	ArticlesInsertedTotal  prometheus.Counter
	DuplicatesSkippedTotal *prometheus.CounterVec
	IngestDuration         prometheus.Histogram
)

var initOnce sync.Once

// Init registers all collectors. Safe to call more than once; only the
// first call registers.
func Init() {
	initOnce.Do(initAll)
}

func initAll() {
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	JobsInQueue = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingest_jobs_in_queue",
			Help: "Current number of ingest jobs waiting in the queue.",
		},
	)

	FeedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_requests_total",
			Help: "Total number of feed page requests by response status.",
		},
		[]string{"status"},
	)

	FeedRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_retries_total",
			Help: "Total number of feed page request retries.",
		},
	)

	PagesFetchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_pages_fetched_total",
			Help: "Total number of feed pages fetched successfully.",
		},
	)

	ArticlesFetchedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_fetched_total",
			Help: "Total number of articles accepted into crawl results.",
		},
	)

	ArticlesInsertedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_inserted_total",
			Help: "Total number of articles inserted into the store.",
		},
	)

	DuplicatesSkippedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duplicates_skipped_total",
			Help: "Total number of articles dropped as duplicates, by dedup phase.",
		},
		[]string{"phase"}, // cache, identity, content
	)

	IngestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingest_run_duration_seconds",
			Help:    "Duration of full ingest runs.",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)
}
