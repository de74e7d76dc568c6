package observability

import (
	"sync"
	"time"
)

type requestKey struct {
	path   string
	method string
	status int
}

// Metrics keeps in-memory request and error tallies. Good enough for a
// single process; nothing here is exported to an external collector.
type Metrics struct {
	mu       sync.Mutex
	requests map[requestKey]int64
	errors   map[string]int64
	totalDur time.Duration
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[requestKey]int64),
		errors:   make(map[string]int64),
	}
}

// RecordRequest tallies a completed request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[requestKey{path: path, method: method, status: status}]++
	m.totalDur += duration
}

// RecordError tallies a request that resolved to an error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[path+" "+method+" "+code]++
}
