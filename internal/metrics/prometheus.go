package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DurationBuckets are the request duration histogram buckets in seconds.
var DurationBuckets = []float64{0.1, 0.3, 0.5, 0.7, 1, 3, 5, 7, 10}

// Prometheus records metrics into a dedicated prometheus registry.
// Create one per process at startup and share it.
type Prometheus struct {
	registry *prometheus.Registry

	requestDuration   *prometheus.HistogramVec
	requestsTotal     *prometheus.CounterVec
	activeConnections prometheus.Gauge
	cacheRequests     *prometheus.CounterVec
}

// NewPrometheus creates the collectors and registers them, together with the
// Go runtime and process collectors, on registry. A nil registry gets a fresh one.
func NewPrometheus(registry *prometheus.Registry) *Prometheus {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	p := &Prometheus{
		registry: registry,

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: DurationBuckets,
			},
			[]string{"method", "route", "status_code"},
		),

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),

		activeConnections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "active_connections",
				Help: "Number of active connections",
			},
		),

		cacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_requests_total",
				Help: "Cache lookups for the user listing by result",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(
		p.requestDuration,
		p.requestsTotal,
		p.activeConnections,
		p.cacheRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return p
}

// Registry returns the underlying registry.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// Handler serves the registry in the Prometheus text exposition format.
// A gathering error produces a 500.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}

// ObserveRequest records one finished request.
func (p *Prometheus) ObserveRequest(method, route string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	p.requestDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
	p.requestsTotal.WithLabelValues(method, route, code).Inc()
}

// IncActiveConnections marks a request as started.
func (p *Prometheus) IncActiveConnections() {
	p.activeConnections.Inc()
}

// DecActiveConnections marks a request as finished.
func (p *Prometheus) DecActiveConnections() {
	p.activeConnections.Dec()
}

// IncCacheHit counts a cache hit.
func (p *Prometheus) IncCacheHit() {
	p.cacheRequests.WithLabelValues("hit").Inc()
}

// IncCacheMiss counts a cache miss.
func (p *Prometheus) IncCacheMiss() {
	p.cacheRequests.WithLabelValues("miss").Inc()
}
