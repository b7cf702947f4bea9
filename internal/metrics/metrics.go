package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "boundless"

// Metrics holds the client's Prometheus collectors.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	listings        *prometheus.CounterVec
	decodeErrors    prometheus.Counter
	throttleWait    prometheus.Histogram
	worlds          prometheus.Gauge
}

// New creates the collectors and registers them with reg. A nil reg skips
// registration, which is convenient in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests issued, by endpoint and status.",
		}, []string{"endpoint", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		listings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_decoded_total",
			Help:      "Shop listings decoded, by world and side.",
		}, []string{"world", "side"}),
		decodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_errors_total",
			Help:      "Shop buffers rejected as malformed.",
		}),
		throttleWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "throttle_wait_seconds",
			Help:      "Time spent waiting for the request throttle.",
			Buckets:   []float64{0, 0.1, 0.25, 0.5, 1, 1.5, 2, 5},
		}),
		worlds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "worlds",
			Help:      "Worlds in the discovery cache.",
		}),
	}

	if reg != nil {
		reg.MustRegister(
			m.requests,
			m.requestDuration,
			m.listings,
			m.decodeErrors,
			m.throttleWait,
			m.worlds,
		)
	}

	return m
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(endpoint, status string, d time.Duration) {
	m.requests.WithLabelValues(endpoint, status).Inc()
	m.requestDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// ObserveThrottleWait records time spent blocked on the throttle.
func (m *Metrics) ObserveThrottleWait(d time.Duration) {
	m.throttleWait.Observe(d.Seconds())
}

// AddListings counts decoded listings for one world.
func (m *Metrics) AddListings(worldID int, side string, n int) {
	m.listings.WithLabelValues(strconv.Itoa(worldID), side).Add(float64(n))
}

// IncDecodeErrors counts one rejected buffer.
func (m *Metrics) IncDecodeErrors() {
	m.decodeErrors.Inc()
}

// SetWorlds sets the cached world count.
func (m *Metrics) SetWorlds(n int) {
	m.worlds.Set(float64(n))
}
