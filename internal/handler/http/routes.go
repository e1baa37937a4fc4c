package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, h.withMetrics, withGZip)

	// visitor routes and owner sign-in, no session required
	router.Group(func(r chi.Router) {
		r.Route("/api/public/profile/{handle}", func(r chi.Router) {
			r.Get("/", h.getPublicProfile)
			r.Post("/verify-password", h.verifyPassword)
			r.Post("/request-otp", h.requestOTP)
			r.Post("/verify-otp", h.verifyOTP)
		})
		r.Get("/api/public/emergency/{handle}", h.getEmergencyProfile)

		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
	})

	// owner routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/profile", h.getProfile)
		r.Put("/api/profile", h.updateProfile)
		r.Post("/api/emergency/sos", h.triggerSOS)
	})

	router.Get("/api/version/", h.getServerVersion)
	router.Handle("/metrics", h.metrics.handler())

	router.MethodNotAllowed(CheckHTTPMethod(router))
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errRouteNotFound)
	})

	return router
}
