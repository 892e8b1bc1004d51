// Package health aggregates dependency probes and process memory into a report.
package health

import (
	"context"
	"fmt"
	"time"
)

// Report statuses.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// Check statuses.
const (
	CheckConnected     = "connected"
	CheckNotConfigured = "not_configured"
	CheckError         = "error"
)

// Pinger is a dependency that can be probed.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Probe names one dependency. A nil Pinger means the dependency was never
// configured; it is reported but does not affect overall health.
type Probe struct {
	Name   string
	Pinger Pinger
}

// CheckResult is the outcome of one probe.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"responseTime,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Report is the full health document.
type Report struct {
	Status      string         `json:"status"`
	Timestamp   string         `json:"timestamp"`
	Uptime      float64        `json:"uptime"`
	Environment string         `json:"environment"`
	Version     string         `json:"version"`
	Checks      map[string]any `json:"checks"`

	results map[string]CheckResult
}

// Healthy reports whether every configured dependency answered.
func (r *Report) Healthy() bool {
	return r.Status == StatusHealthy
}

// Result returns the probe result for name.
func (r *Report) Result(name string) (CheckResult, bool) {
	res, ok := r.results[name]
	return res, ok
}

// Options configures an Aggregator.
type Options struct {
	Environment string
	Version     string
	// Timeout bounds each probe separately. Zero means 5s.
	Timeout time.Duration
	// Memory collects process memory. Nil disables the memory section.
	Memory MemoryReader
}

// Aggregator runs probes and assembles reports.
type Aggregator struct {
	probes  []Probe
	opts    Options
	started time.Time
	now     func() time.Time
}

// NewAggregator creates an Aggregator. Probes are reported in the given order.
func NewAggregator(opts Options, probes ...Probe) *Aggregator {
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	return &Aggregator{
		probes:  probes,
		opts:    opts,
		started: time.Now(),
		now:     time.Now,
	}
}

// Check probes every dependency and returns the report.
// A failed probe marks the report unhealthy but never aborts it.
func (a *Aggregator) Check(ctx context.Context) *Report {
	now := a.now()
	report := &Report{
		Status:      StatusHealthy,
		Timestamp:   now.UTC().Format(time.RFC3339Nano),
		Uptime:      now.Sub(a.started).Seconds(),
		Environment: a.opts.Environment,
		Version:     a.opts.Version,
		Checks:      make(map[string]any, len(a.probes)+1),
		results:     make(map[string]CheckResult, len(a.probes)),
	}

	for _, p := range a.probes {
		res := a.probe(ctx, p)
		if res.Status == CheckError {
			report.Status = StatusUnhealthy
		}
		report.Checks[p.Name] = res
		report.results[p.Name] = res
	}

	if a.opts.Memory != nil {
		report.Checks["memory"] = a.opts.Memory.ReadMemory()
	}

	return report
}

func (a *Aggregator) probe(ctx context.Context, p Probe) CheckResult {
	if p.Pinger == nil {
		return CheckResult{Status: CheckNotConfigured, ResponseTime: "0ms"}
	}

	ctx, cancel := context.WithTimeout(ctx, a.opts.Timeout)
	defer cancel()

	start := time.Now()
	if err := p.Pinger.Ping(ctx); err != nil {
		return CheckResult{Status: CheckError, Error: err.Error()}
	}

	return CheckResult{
		Status:       CheckConnected,
		ResponseTime: fmt.Sprintf("%dms", time.Since(start).Milliseconds()),
	}
}
