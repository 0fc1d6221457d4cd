package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type metrics struct {
	registry        *prometheus.Registry
	deliveriesTotal *prometheus.CounterVec
	eventsTotal     *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	height          prometheus.Gauge
}

func newMetrics() *metrics {
	deliveries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chainswap_deliveries_total",
		Help: "Delivered transactions by message path and outcome",
	}, []string{"path", "outcome"})

	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chainswap_events_total",
		Help: "Events emitted by committed transactions",
	}, []string{"event"})

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chainswap_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})

	height := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "chainswap_height",
		Help: "Height of the last committed transaction",
	})

	r := prometheus.NewRegistry()
	r.MustRegister(deliveries, events, duration, height)

	return &metrics{
		registry:        r,
		deliveriesTotal: deliveries,
		eventsTotal:     events,
		requestDuration: duration,
		height:          height,
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) incDelivery(path, outcome string) {
	m.deliveriesTotal.WithLabelValues(path, outcome).Inc()
}

func (m *metrics) incEvent(name string) {
	m.eventsTotal.WithLabelValues(name).Inc()
}

func (m *metrics) observeRequest(method string, status int, d time.Duration) {
	m.requestDuration.WithLabelValues(method, http.StatusText(status)).Observe(d.Seconds())
}

func (m *metrics) setHeight(h int64) {
	m.height.Set(float64(h))
}
