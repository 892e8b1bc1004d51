package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// ObserveRequest is a no-op.
func (n *NoopRecorder) ObserveRequest(method, route string, status int, duration time.Duration) {}

// IncActiveConnections is a no-op.
func (n *NoopRecorder) IncActiveConnections() {}

// DecActiveConnections is a no-op.
func (n *NoopRecorder) DecActiveConnections() {}

// IncCacheHit is a no-op.
func (n *NoopRecorder) IncCacheHit() {}

// IncCacheMiss is a no-op.
func (n *NoopRecorder) IncCacheMiss() {}
