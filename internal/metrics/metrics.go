// Package metrics holds the Prometheus collectors shared by the HTTP layer
// and the chat responders.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts finished requests.
	// Labels: route (chi pattern, not the raw path), method, status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskchat",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by route pattern, method and status code",
	}, []string{"route", "method", "status"})

	// HTTPDuration measures handler latency.
	// Labels: route, method
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "taskchat",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	// ResponderReplies counts chat replies.
	// Labels: responder (generative, rules), outcome (ok, degraded, or the matched rule)
	ResponderReplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "taskchat",
		Subsystem: "responder",
		Name:      "replies_total",
		Help:      "Total chat replies by responder and outcome",
	}, []string{"responder", "outcome"})
)
