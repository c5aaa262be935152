// internal/utils/metrics/metrics.go
package metrics

import (
	"time"
)

func status(err error) string {
	if err != nil {
		return "failed"
	}
	return "success"
}

// RecordToolCall records one tool invocation.
func (c *Collector) RecordToolCall(tool string, duration time.Duration, err error) {
	if c == nil {
		return
	}
	c.toolCalls.WithLabelValues(tool, status(err)).Inc()
	c.toolDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// RecordRPCLatency records one JSON-RPC request, retries included.
func (c *Collector) RecordRPCLatency(method string, duration time.Duration, err error) {
	if c == nil {
		return
	}
	c.rpcRequests.WithLabelValues(method, status(err)).Inc()
	c.rpcLatency.WithLabelValues(method).Observe(duration.Seconds())
}
