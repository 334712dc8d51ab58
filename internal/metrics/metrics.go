package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "streetbite"

// Metrics owns a private registry so several instances (tests, multiple routers) never collide.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpDuration    *prometheus.HistogramVec
	ordersCreated   *prometheus.CounterVec
	orderRejections *prometheus.CounterVec
	statusChanges   *prometheus.CounterVec
	ordersDeleted   prometheus.Counter
	pageViews       prometheus.Counter
	priceMismatches prometheus.Counter
}

// New creates the collectors and registers them together with the Go and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Latency of HTTP requests by route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		ordersCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "orders_created_total",
				Help:      "Orders written to the ledger",
			},
			[]string{"order_type"},
		),
		orderRejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "order_rejections_total",
				Help:      "Checkout attempts refused before anything was written",
			},
			[]string{"reason"},
		),
		statusChanges: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "order_status_changes_total",
				Help:      "Order status writes by target status",
			},
			[]string{"status"},
		),
		ordersDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_soft_deleted_total",
			Help:      "Orders hidden from listings and stats",
		}),
		pageViews: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "landing_page_views_total",
			Help:      "Landing page visits counted",
		}),
		priceMismatches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_price_mismatches_total",
			Help:      "Orders whose client-sent prices differed from the catalog",
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpDuration,
		m.ordersCreated,
		m.orderRejections,
		m.statusChanges,
		m.ordersDeleted,
		m.pageViews,
		m.priceMismatches,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

func (m *Metrics) OrderCreated(orderType string) {
	if m == nil {
		return
	}
	m.ordersCreated.WithLabelValues(orderType).Inc()
}

// OrderRejected counts refusals; reason is one of shop_closed, invalid, unknown_item.
func (m *Metrics) OrderRejected(reason string) {
	if m == nil {
		return
	}
	m.orderRejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) StatusChanged(status string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) OrderSoftDeleted() {
	if m == nil {
		return
	}
	m.ordersDeleted.Inc()
}

func (m *Metrics) PageViewed() {
	if m == nil {
		return
	}
	m.pageViews.Inc()
}

func (m *Metrics) PriceMismatch() {
	if m == nil {
		return
	}
	m.priceMismatches.Inc()
}
