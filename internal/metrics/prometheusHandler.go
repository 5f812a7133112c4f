package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var queryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "query_duration_seconds",
	Help:    "Total time spent answering a question, by mode.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30},
}, []string{"mode"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

var refusalsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "refusals_total",
	Help: "Answers that came back as the out-of-scope refusal, by mode.",
}, []string{"mode"})

var indexRunActive = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "index_run_active",
	Help: "1 while an indexing run is in flight",
})

var indexedChunksTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "indexed_chunks_total",
	Help: "Chunks written to the vector store across all runs",
})

type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureQueryMetrics(mode string, timeElapsed time.Duration) {
	queryDuration.WithLabelValues(mode).Observe(timeElapsed.Seconds())
}

func IncrementRefusals(mode string) {
	refusalsTotal.WithLabelValues(mode).Inc()
}

func SetIndexRunActive(active bool) {
	if active {
		indexRunActive.Set(1)
		return
	}
	indexRunActive.Set(0)
}

func AddIndexedChunks(n int) {
	indexedChunksTotal.Add(float64(n))
}
