// Package metrics implements the observability hook interfaces on top of
// Prometheus.
//
// The server registers these implementations at startup; the CLI leaves the
// no-op defaults in place. All collectors are registered with the default
// registry, so the promhttp handler exposes them without extra wiring.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/HaomingX/KnowledgeCircuitVis/pkg/observability"
)

var (
	// parseTotal counts parse stage executions by source and outcome.
	parseTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuitvis_parse_total",
			Help: "Total number of circuit parse operations",
		},
		[]string{"source", "outcome"},
	)

	// parseDuration tracks parse stage latency by source.
	parseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "circuitvis_parse_duration_seconds",
			Help:    "Duration of circuit parse operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	// layoutDuration tracks layout stage latency.
	layoutDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "circuitvis_layout_duration_seconds",
			Help:    "Duration of element layout computations",
			Buckets: prometheus.DefBuckets,
		},
	)

	// renderDuration tracks render stage latency by artifact format.
	renderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "circuitvis_render_duration_seconds",
			Help:    "Duration of artifact rendering",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	// cacheOps counts cache hits, misses, and writes by key type.
	cacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuitvis_cache_ops_total",
			Help: "Total cache operations by key type and result",
		},
		[]string{"key_type", "result"},
	)

	// httpRequests counts served HTTP requests by route and status.
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuitvis_http_requests_total",
			Help: "Total HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	// httpDuration tracks HTTP request latency by route.
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "circuitvis_http_request_duration_seconds",
			Help:    "Duration of served HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	// Register metrics with the default registry
	prometheus.MustRegister(parseTotal)
	prometheus.MustRegister(parseDuration)
	prometheus.MustRegister(layoutDuration)
	prometheus.MustRegister(renderDuration)
	prometheus.MustRegister(cacheOps)
	prometheus.MustRegister(httpRequests)
	prometheus.MustRegister(httpDuration)
}

// Register installs the Prometheus-backed hooks into the global
// observability registry. Call once at server startup.
func Register() {
	observability.SetPipelineHooks(PipelineMetrics{})
	observability.SetCacheHooks(CacheMetrics{})
	observability.SetHTTPHooks(HTTPMetrics{})
}

// PipelineMetrics implements observability.PipelineHooks.
type PipelineMetrics struct{}

func (PipelineMetrics) OnParseStart(context.Context, string) {}

func (PipelineMetrics) OnParseComplete(_ context.Context, source string, _ int, d time.Duration, err error) {
	parseTotal.WithLabelValues(source, outcome(err)).Inc()
	parseDuration.WithLabelValues(source).Observe(d.Seconds())
}

func (PipelineMetrics) OnLayoutStart(context.Context, int) {}

func (PipelineMetrics) OnLayoutComplete(_ context.Context, d time.Duration, err error) {
	if err == nil {
		layoutDuration.Observe(d.Seconds())
	}
}

func (PipelineMetrics) OnRenderStart(context.Context, string) {}

func (PipelineMetrics) OnRenderComplete(_ context.Context, format string, d time.Duration, err error) {
	if err == nil {
		renderDuration.WithLabelValues(format).Observe(d.Seconds())
	}
}

// CacheMetrics implements observability.CacheHooks.
type CacheMetrics struct{}

func (CacheMetrics) OnCacheHit(_ context.Context, keyType string) {
	cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (CacheMetrics) OnCacheMiss(_ context.Context, keyType string) {
	cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (CacheMetrics) OnCacheSet(_ context.Context, keyType string, _ int) {
	cacheOps.WithLabelValues(keyType, "set").Inc()
}

// HTTPMetrics implements observability.HTTPHooks.
type HTTPMetrics struct{}

func (HTTPMetrics) OnRequest(context.Context, string, string) {}

func (HTTPMetrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// statusLabel buckets status codes into their class ("2xx", "4xx", ...) to
// keep cardinality low.
func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
