package metrics

import (
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	Requests          map[string]uint64 // keyed by "METHOD route status"
	ActiveConnections int64
	CacheHits         uint64
	CacheMisses       uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	mu       sync.Mutex
	requests map[string]uint64

	activeConnections int64
	cacheHits         uint64
	cacheMisses       uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{requests: make(map[string]uint64)}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	m.mu.Lock()
	requests := make(map[string]uint64, len(m.requests))
	for k, v := range m.requests {
		requests[k] = v
	}
	m.mu.Unlock()

	return Snapshot{
		Requests:          requests,
		ActiveConnections: atomic.LoadInt64(&m.activeConnections),
		CacheHits:         atomic.LoadUint64(&m.cacheHits),
		CacheMisses:       atomic.LoadUint64(&m.cacheMisses),
	}
}

// RequestKey builds the Snapshot.Requests key for a label set.
func RequestKey(method, route string, status int) string {
	return method + " " + route + " " + strconv.Itoa(status)
}

// ObserveRequest counts a finished request.
func (m *InMemoryRecorder) ObserveRequest(method, route string, status int, duration time.Duration) {
	m.mu.Lock()
	m.requests[RequestKey(method, route, status)]++
	m.mu.Unlock()
}

// IncActiveConnections increments the in-flight gauge.
func (m *InMemoryRecorder) IncActiveConnections() {
	atomic.AddInt64(&m.activeConnections, 1)
}

// DecActiveConnections decrements the in-flight gauge.
func (m *InMemoryRecorder) DecActiveConnections() {
	atomic.AddInt64(&m.activeConnections, -1)
}

// IncCacheHit increments cache hit counter.
func (m *InMemoryRecorder) IncCacheHit() {
	atomic.AddUint64(&m.cacheHits, 1)
}

// IncCacheMiss increments cache miss counter.
func (m *InMemoryRecorder) IncCacheMiss() {
	atomic.AddUint64(&m.cacheMisses, 1)
}
