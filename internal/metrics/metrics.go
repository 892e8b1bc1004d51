// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Prometheus is the production implementation; InMemoryRecorder and
// NoopRecorder serve tests.
type Recorder interface {
	// HTTP metrics
	ObserveRequest(method, route string, status int, duration time.Duration)
	IncActiveConnections()
	DecActiveConnections()

	// Cache metrics
	IncCacheHit()
	IncCacheMiss()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
