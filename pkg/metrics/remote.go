package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels recorded for remote requests.
const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport"
	OutcomeProtocol  = "protocol"
	OutcomeDecode    = "decode"
)

// RemoteMetrics records latency and outcome of requests sent to the remote API.
type RemoteMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
}

// NewRemoteMetrics registers the remote request metrics on the provided registerer.
func NewRemoteMetrics(reg prometheus.Registerer) *RemoteMetrics {
	if reg == nil {
		return &RemoteMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "remote_request_duration_seconds",
		Help:    "Duration of remote API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "remote_request_total",
		Help: "Remote API requests by outcome.",
	}, []string{"operation", "outcome"})
	reg.MustRegister(duration, requests)
	return &RemoteMetrics{
		duration: duration,
		requests: requests,
	}
}

// Observe records one finished request.
func (m *RemoteMetrics) Observe(operation, outcome string, duration time.Duration) {
	if m == nil || m.duration == nil || m.requests == nil {
		return
	}
	op := normalizeLabel(operation)
	m.duration.WithLabelValues(op).Observe(duration.Seconds())
	m.requests.WithLabelValues(op, normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
