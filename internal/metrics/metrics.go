// Package metrics exposes Prometheus collectors for LifeOS sessions, page
// mounts, scheduled timers and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all collectors on a private registry.
type Metrics struct {
	reg *prometheus.Registry

	SessionsActive  prometheus.Gauge
	SessionsCreated prometheus.Counter
	SessionsReaped  prometheus.Counter
	PageMounts      *prometheus.CounterVec
	TimersFired     prometheus.Counter
	TimersCancelled prometheus.Counter
	Events          *prometheus.CounterVec

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers the collectors on a fresh registry. Separate instances never
// collide, so tests can create as many as they like.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,

		SessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Name: "lifeos_sessions_active",
			Help: "Number of open sessions",
		}),
		SessionsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "lifeos_sessions_created_total",
			Help: "Total number of sessions created",
		}),
		SessionsReaped: f.NewCounter(prometheus.CounterOpts{
			Name: "lifeos_sessions_reaped_total",
			Help: "Total number of sessions closed for inactivity",
		}),
		PageMounts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lifeos_page_mounts_total",
			Help: "Total number of page mounts by route",
		}, []string{"route"}),
		TimersFired: f.NewCounter(prometheus.CounterOpts{
			Name: "lifeos_timers_fired_total",
			Help: "Total number of scheduled callbacks that ran",
		}),
		TimersCancelled: f.NewCounter(prometheus.CounterOpts{
			Name: "lifeos_timers_cancelled_total",
			Help: "Total number of scheduled callbacks cancelled before running",
		}),
		Events: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lifeos_events_total",
			Help: "Total number of session events by kind",
		}, []string{"kind"}),

		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "lifeos_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lifeos_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"method", "route"}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// TimerFired implements loop.Observer.
func (m *Metrics) TimerFired() { m.TimersFired.Inc() }

// TimerCancelled implements loop.Observer.
func (m *Metrics) TimerCancelled() { m.TimersCancelled.Inc() }

// Middleware records request counts and latency labelled by the matched chi
// route pattern, so ids in paths do not explode cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
