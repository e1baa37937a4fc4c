package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/go-health-share/internal/service"
	"github.com/MKhiriev/go-health-share/models"
)

// metrics holds the collectors of one handler. They live in their own
// registry so several handlers can coexist in one process.
type metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	challenges      *prometheus.CounterVec
	otpRequests     *prometheus.CounterVec
	sosTriggered    prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "share_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "share_http_request_duration_seconds",
			Help:    "Time spent processing HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		challenges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "share_challenge_attempts_total",
			Help: "Total number of visitor challenge attempts",
		}, []string{"access_type", "result"}),
		otpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "share_otp_requests_total",
			Help: "Total number of one-time code requests",
		}, []string{"result"}),
		sosTriggered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "share_sos_triggered_total",
			Help: "Total number of issued emergency tokens",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.challenges,
		m.otpRequests,
		m.sosTriggered,
		prometheus.NewGoCollector(),
	)

	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{DisableCompression: true})
}

func (m *metrics) observeChallenge(accessType models.AccessType, err error) {
	m.challenges.WithLabelValues(string(accessType), resultLabel(err)).Inc()
}

func (m *metrics) observeOTPRequest(err error) {
	m.otpRequests.WithLabelValues(resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, service.ErrWrongPassword), errors.Is(err, service.ErrWrongOTP):
		return "rejected"
	case errors.Is(err, service.ErrOTPExpired):
		return "expired"
	case errors.Is(err, service.ErrOTPCooldown):
		return "cooldown"
	}
	return "error"
}

// withMetrics counts requests by route pattern, so handles never become
// label values.
func (h *Handler) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(rw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := rw.status
		if status == 0 {
			status = http.StatusOK
		}

		h.metrics.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		h.metrics.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
