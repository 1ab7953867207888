package monitoring

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds application counters, updated atomically.
type Metrics struct {
	RequestCount       int64
	ErrorCount         int64
	MappingCount       int64
	TextMappings       int64
	ValidationFailures int64
	CacheHits          int64
	CacheMisses        int64
	StartTime          time.Time

	RequestCountByStatus map[int]int64
	statusMutex          sync.RWMutex
}

// NewMetrics creates a new metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime:            time.Now(),
		RequestCountByStatus: make(map[int]int64),
	}
}

// IncrementRequest increments the request count.
func (m *Metrics) IncrementRequest() {
	atomic.AddInt64(&m.RequestCount, 1)
}

// IncrementError increments the error count.
func (m *Metrics) IncrementError() {
	atomic.AddInt64(&m.ErrorCount, 1)
}

// IncrementMapping records a completed mapping; textUsed marks whether
// the free-text channel contributed.
func (m *Metrics) IncrementMapping(textUsed bool) {
	atomic.AddInt64(&m.MappingCount, 1)
	if textUsed {
		atomic.AddInt64(&m.TextMappings, 1)
	}
}

// IncrementValidationFailure records a rejected submission.
func (m *Metrics) IncrementValidationFailure() {
	atomic.AddInt64(&m.ValidationFailures, 1)
}

// RecordStatus tracks a response status code.
func (m *Metrics) RecordStatus(code int) {
	m.statusMutex.Lock()
	m.RequestCountByStatus[code]++
	m.statusMutex.Unlock()
}

// Snapshot returns the current counters for the stats endpoint.
func (m *Metrics) Snapshot() map[string]any {
	m.statusMutex.RLock()
	byStatus := make(map[int]int64, len(m.RequestCountByStatus))
	for k, v := range m.RequestCountByStatus {
		byStatus[k] = v
	}
	m.statusMutex.RUnlock()

	return map[string]any{
		"request_count":       atomic.LoadInt64(&m.RequestCount),
		"error_count":         atomic.LoadInt64(&m.ErrorCount),
		"mapping_count":       atomic.LoadInt64(&m.MappingCount),
		"text_mappings":       atomic.LoadInt64(&m.TextMappings),
		"validation_failures": atomic.LoadInt64(&m.ValidationFailures),
		"cache_hits":          atomic.LoadInt64(&m.CacheHits),
		"cache_misses":        atomic.LoadInt64(&m.CacheMisses),
		"requests_by_status":  byStatus,
		"uptime_seconds":      time.Since(m.StartTime).Seconds(),
	}
}
