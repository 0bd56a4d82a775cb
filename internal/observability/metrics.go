package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	portalRequestsTotal  *prometheus.CounterVec
	portalLatencySeconds *prometheus.HistogramVec
	portalErrorsTotal    *prometheus.CounterVec
	documentWritesTotal  *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors for the portal API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		portalRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_requests_total",
			Help: "Total number of portal API requests served.",
		}, []string{"method", "route", "status"})

		portalLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "portal_latency_seconds",
			Help:    "Latency distribution for portal API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		portalErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_errors_total",
			Help: "Total number of error responses returned by the portal API.",
		}, []string{"method", "route", "status"})

		documentWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_document_writes_total",
			Help: "Document persistence attempts by outcome.",
		}, []string{"outcome"})

		prometheus.MustRegister(portalRequestsTotal, portalLatencySeconds, portalErrorsTotal, documentWritesTotal)
	})
}

// PortalRequests exposes the counter for portal requests.
func PortalRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return portalRequestsTotal
}

// PortalLatency exposes the latency histogram for portal requests.
func PortalLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return portalLatencySeconds
}

// PortalErrors exposes the counter for portal error responses.
func PortalErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return portalErrorsTotal
}

// DocumentWrites counts persistence attempts. The "degraded" outcome marks
// writes that mutated memory but failed to reach the backend.
func DocumentWrites() *prometheus.CounterVec {
	RegisterMetrics()
	return documentWritesTotal
}
