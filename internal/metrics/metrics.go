package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "promptbench"

var (
	providerCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_calls_total",
		Help:      "LLM provider calls by provider, model and outcome.",
	}, []string{"provider", "model", "outcome"})

	providerLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_call_duration_seconds",
		Help:      "Latency of LLM provider calls.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64},
	}, []string{"provider", "model"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"method", "path", "status_code"})

	httpDuration = promauto.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Objectives: map[float64]float64{
			0.5:  0.05,
			0.9:  0.01,
			0.95: 0.005,
			0.99: 0.001,
		},
	}, []string{"method", "path", "status_code"})
)

// ObserveProviderCall records one provider call. outcome is "ok" or an error class.
func ObserveProviderCall(provider, model, outcome string, elapsed time.Duration) {
	providerCalls.WithLabelValues(provider, model, outcome).Inc()
	providerLatency.WithLabelValues(provider, model).Observe(elapsed.Seconds())
}

func ObserveHTTPRequest(method, path, status string, elapsed time.Duration) {
	httpDuration.WithLabelValues(method, path, status).Observe(elapsed.Seconds())
	httpRequests.WithLabelValues(method, path, status).Inc()
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
