package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-health-share/internal/logger"
)

// withLogging writes one access log line per request. The token query
// parameter is left out of the logged URI.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		start := time.Now()
		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		log.Info().
			Str("uri", r.URL.Path).
			Bool("with_token", r.URL.Query().Has("token")).
			Str("method", r.Method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Send()
	})
}
