// internal/utils/metrics/collector.go
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "abstract_mcp"

// Collector owns a private registry so several collectors can coexist in one process (tests).
// A nil *Collector is valid and records nothing.
type Collector struct {
	registry     *prometheus.Registry
	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	rpcRequests  *prometheus.CounterVec
	rpcLatency   *prometheus.HistogramVec
}

// NewCollector creates a collector with all metrics registered.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool name and outcome.",
		}, []string{"tool", "status"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_duration_seconds",
			Help:      "Tool invocation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "JSON-RPC requests by method and outcome.",
		}, []string{"method", "status"}),
		rpcLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_latency_seconds",
			Help:      "JSON-RPC request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	c.registry.MustRegister(c.toolCalls, c.toolDuration, c.rpcRequests, c.rpcLatency)
	return c
}

// Registry exposes the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collected metrics in the prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Reset clears all series (useful in tests).
func (c *Collector) Reset() {
	if c == nil {
		return
	}
	c.toolCalls.Reset()
	c.toolDuration.Reset()
	c.rpcRequests.Reset()
	c.rpcLatency.Reset()
}
