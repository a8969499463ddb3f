package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	processingStartedTotal   atomic.Uint64
	processingCompletedTotal atomic.Uint64
	processingFailedTotal    atomic.Uint64

	processingDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})

	workerJobsReceivedTotal           atomic.Uint64
	workerJobsCompletedTotal          atomic.Uint64
	workerJobsFailedTotal             atomic.Uint64
	workerJobsDeletedUnrecoverableTot atomic.Uint64
)

// IncWorkerJobsReceived increments the received-jobs counter.
func IncWorkerJobsReceived() {
	workerJobsReceivedTotal.Add(1)
}

// IncWorkerJobsCompleted increments the completed-jobs counter.
func IncWorkerJobsCompleted() {
	workerJobsCompletedTotal.Add(1)
}

// IncWorkerJobsFailed increments the failed-jobs counter.
func IncWorkerJobsFailed() {
	workerJobsFailedTotal.Add(1)
}

// IncWorkerJobsDeletedUnrecoverable counts poison messages dropped
// without processing.
func IncWorkerJobsDeletedUnrecoverable() {
	workerJobsDeletedUnrecoverableTot.Add(1)
}

// IncProcessingStarted increments the started counter.
func IncProcessingStarted() {
	processingStartedTotal.Add(1)
}

// IncProcessingCompleted increments the completed counter.
func IncProcessingCompleted() {
	processingCompletedTotal.Add(1)
}

// IncProcessingFailed increments the failed counter.
func IncProcessingFailed() {
	processingFailedTotal.Add(1)
}

// ObserveProcessingDurationMs records a processing duration in milliseconds.
func ObserveProcessingDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	processingDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "processing_started_total", "Total documents entering processing", processingStartedTotal.Load())
	writeCounter(&buf, "processing_completed_total", "Total documents processed successfully", processingCompletedTotal.Load())
	writeCounter(&buf, "processing_failed_total", "Total documents that failed processing", processingFailedTotal.Load())
	writeHistogram(&buf, "processing_duration_ms", "Document processing duration in milliseconds", processingDuration.Snapshot())
	writeCounter(&buf, "worker_jobs_received_total", "Total queue jobs received", workerJobsReceivedTotal.Load())
	writeCounter(&buf, "worker_jobs_completed_total", "Total queue jobs completed", workerJobsCompletedTotal.Load())
	writeCounter(&buf, "worker_jobs_failed_total", "Total queue jobs failed", workerJobsFailedTotal.Load())
	writeCounter(&buf, "worker_jobs_deleted_unrecoverable_total", "Total poison queue jobs dropped", workerJobsDeletedUnrecoverableTot.Load())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
