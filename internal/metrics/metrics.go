package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics holds all Prometheus metric collectors for the Candor server.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AuthFailuresTotal  *prometheus.CounterVec
	AuthSuccessesTotal prometheus.Counter

	FeedbackEventsTotal *prometheus.CounterVec

	RateLimitRejectionsTotal prometheus.Counter

	ServerStartTime prometheus.Gauge
}

// New creates and registers all Prometheus metrics on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "candor_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path_pattern", "status_code"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "candor_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path_pattern"}),

		AuthFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "candor_auth_failures_total",
			Help: "Total number of authentication failures by reason.",
		}, []string{"reason"}),

		AuthSuccessesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "candor_auth_successes_total",
			Help: "Total number of successful logins.",
		}),

		FeedbackEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "candor_feedback_events_total",
			Help: "Total number of feedback mutations by event.",
		}, []string{"event"}),

		RateLimitRejectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "candor_ratelimit_rejections_total",
			Help: "Total number of login attempts rejected by the rate limiter.",
		}),

		ServerStartTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "candor_server_start_time_seconds",
			Help: "Unix timestamp when the server started.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AuthFailuresTotal,
		m.AuthSuccessesTotal,
		m.FeedbackEventsTotal,
		m.RateLimitRejectionsTotal,
		m.ServerStartTime,
	)

	m.ServerStartTime.Set(float64(time.Now().Unix()))

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

// Registry returns the private Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RegisterPool exposes the candor_db_pool_* series, read from read on every
// scrape. Use ReadPool to adapt a *pgxpool.Pool.
func (m *Metrics) RegisterPool(read func() PoolStats) {
	m.registry.MustRegister(newPoolCollector(read))
}

// ObserveRequest records one served HTTP request. pattern is the matched
// route pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, pattern string, status int, elapsed time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, pattern, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, pattern).Observe(elapsed.Seconds())
}

// IncAuthFailure increments the auth failure counter for reason.
func (m *Metrics) IncAuthFailure(reason string) {
	m.AuthFailuresTotal.WithLabelValues(reason).Inc()
}

// IncAuthSuccess increments the login success counter.
func (m *Metrics) IncAuthSuccess() {
	m.AuthSuccessesTotal.Inc()
}

// IncFeedbackEvent increments the feedback event counter.
func (m *Metrics) IncFeedbackEvent(event string) {
	m.FeedbackEventsTotal.WithLabelValues(event).Inc()
}

// IncRateLimitRejection increments the login rate limit rejection counter.
func (m *Metrics) IncRateLimitRejection() {
	m.RateLimitRejectionsTotal.Inc()
}
