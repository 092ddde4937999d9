package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics groups the collectors shared by the HTTP layer and the chat service.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	ChatReplies     *prometheus.CounterVec
	ProviderErrors  *prometheus.CounterVec
	ProviderLatency *prometheus.HistogramVec
	DistressSignals prometheus.Counter
	// Toggles is registered by TrackAvailability; nil on the relay.
	Toggles *prometheus.CounterVec

	namespace string
}

// NewMetrics creates collectors on a fresh registry so tests and the two
// binaries never collide on the global one.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry:  reg,
		namespace: namespace,
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"route", "method", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Histogram of response latency (seconds) for HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		ChatReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_replies_total",
			Help:      "Chat replies by the source that produced them",
		}, []string{"source"}),
		ProviderErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "Failed provider calls",
		}, []string{"provider"}),
		ProviderLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_latency_seconds",
			Help:      "Latency of provider calls",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"provider"}),
		DistressSignals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "distress_signals_total",
			Help:      "Distress signals received",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.ChatReplies,
		m.ProviderErrors,
		m.ProviderLatency,
		m.DistressSignals,
	)
	return m
}

// TrackAvailability exports the shutdown flag. active is read on every
// scrape so replicas sharing the flag report the same value.
func (m *Metrics) TrackAvailability(active func() bool) {
	m.Toggles = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "availability_toggles_total",
		Help:      "Shutdown flag changes made by this process",
	}, []string{"state"})
	m.Registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: m.namespace,
			Name:      "server_active",
			Help:      "1 when chat is served, 0 while shut down",
		}, func() float64 {
			if active() {
				return 1
			}
			return 0
		}),
		m.Toggles,
	)
}

// Toggled counts one change of the shutdown flag.
func (m *Metrics) Toggled(active bool) {
	if m.Toggles == nil {
		return
	}
	state := "inactive"
	if active {
		state = "active"
	}
	m.Toggles.WithLabelValues(state).Inc()
}
