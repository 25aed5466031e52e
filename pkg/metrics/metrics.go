// Package metrics expone métricas Prometheus del servicio.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics colectores del servicio registrados en un registro propio.
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	authOutcomes        *prometheus.CounterVec
	salesRows           *prometheus.HistogramVec
}

// New crea y registra los colectores.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		authOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_outcomes_total",
			Help: "Authentication operations by operation and result.",
		}, []string{"operation", "result"}),
		salesRows: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sales_query_rows",
			Help:    "Rows returned per sales query.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"kind"}),
	}
	m.registry.MustRegister(
		m.httpInFlight, m.httpRequestsTotal, m.httpRequestDuration, m.authOutcomes, m.salesRows,
	)
	return m
}

// Registry devuelve el registro (tests y handler).
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler devuelve el handler Fiber de exposición (/metrics).
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// ObserveAuth cuenta el resultado de una operación de auth (login, setup, change).
func (m *Metrics) ObserveAuth(operation, result string) {
	if m == nil {
		return
	}
	m.authOutcomes.WithLabelValues(operation, result).Inc()
}

// ObserveSalesRows registra cuántas filas devolvió una consulta (search, xlsx, pdf).
func (m *Metrics) ObserveSalesRows(kind string, n int) {
	if m == nil {
		return
	}
	m.salesRows.WithLabelValues(kind).Observe(float64(n))
}

// Middleware mide latencia, total y peticiones en curso por ruta registrada.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		labels := []string{c.Method(), route, strconv.Itoa(status)}
		m.httpRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(labels...).Inc()
		return err
	}
}
