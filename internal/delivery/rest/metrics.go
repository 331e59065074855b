package rest

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks performance data
type Metrics struct {
	totalRequests      uint64
	successfulRequests uint64
	failedRequests     uint64
	totalLatency       time.Duration
	mutex              sync.RWMutex
	startTime          time.Time
}

func newMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

func (m *Metrics) started() {
	atomic.AddUint64(&m.totalRequests, 1)
}

func (m *Metrics) succeeded(latency time.Duration) {
	atomic.AddUint64(&m.successfulRequests, 1)
	m.mutex.Lock()
	m.totalLatency += latency
	m.mutex.Unlock()
}

func (m *Metrics) failed() {
	atomic.AddUint64(&m.failedRequests, 1)
}

// Snapshot returns current metrics
func (m *Metrics) Snapshot() map[string]interface{} {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	successful := atomic.LoadUint64(&m.successfulRequests)
	var avgLatency time.Duration
	if successful > 0 {
		avgLatency = time.Duration(int64(m.totalLatency) / int64(successful))
	}

	return map[string]interface{}{
		"totalRequests":      atomic.LoadUint64(&m.totalRequests),
		"successfulRequests": successful,
		"failedRequests":     atomic.LoadUint64(&m.failedRequests),
		"avgLatencyMs":       avgLatency.Milliseconds(),
		"uptimeSeconds":      time.Since(m.startTime).Seconds(),
	}
}
