package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/utils"
)

// auth is an HTTP middleware that enforces owner authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// as a session token via [service.AuthService.ParseToken] and stores the
// owner id in the request context under [utils.UserIDCtxKey]. Visitor access
// tokens and emergency tokens carry a different scope and are rejected here.
//
// Rejections are answered with 401 and a JSON envelope.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := getTokenFromAuthHeader(r.Header.Get("Authorization"))
		if err != nil {
			log.Info().Err(err).Msg("request without usable credentials")
			writeError(w, r, fmt.Errorf("%w: %w", ErrNoUserInContext, err))
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		userID, err := token.GetUserID()
		if err != nil {
			log.Err(err).Msg("session token without user id")
			writeError(w, r, fmt.Errorf("%w: %w", ErrNoUserInContext, err))
			return
		}

		ctx = context.WithValue(ctx, utils.UserIDCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token of a "Bearer <token>" header
// value.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err)
	}

	return token, nil
}
