package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels shared by the counters below.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Registry holds the service collectors. Each router gets its own so tests can build many.
type Registry struct {
	reg             *prometheus.Registry
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	registrations   *prometheus.CounterVec
	logins          *prometheus.CounterVec
	resumeOperation *prometheus.CounterVec
}

// New builds a Registry with process and Go runtime collectors attached.
func New() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Registration attempts by result.",
		}, []string{"result"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
		resumeOperation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resume_operations_total",
			Help: "Resume CRUD operations by operation and result.",
		}, []string{"op", "result"}),
	}
	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.httpRequests,
		r.httpDuration,
		r.registrations,
		r.logins,
		r.resumeOperation,
	)
	return r
}

// ObserveRequest records one finished HTTP request.
func (r *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// IncRegistration counts a registration attempt.
func (r *Registry) IncRegistration(result string) {
	if r == nil {
		return
	}
	r.registrations.WithLabelValues(result).Inc()
}

// IncLogin counts a login attempt.
func (r *Registry) IncLogin(result string) {
	if r == nil {
		return
	}
	r.logins.WithLabelValues(result).Inc()
}

// IncResumeOp counts a resume operation.
func (r *Registry) IncResumeOp(op, result string) {
	if r == nil {
		return
	}
	r.resumeOperation.WithLabelValues(op, result).Inc()
}

// Handler exposes metrics in Prometheus text format.
func (r *Registry) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}

// Gatherer exposes the underlying registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}
