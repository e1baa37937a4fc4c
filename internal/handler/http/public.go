package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/models"
)

// handleParam reads the {handle} path parameter.
func handleParam(r *http.Request) (string, error) {
	handle := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "handle")))
	if handle == "" {
		return "", errEmptyHandle
	}
	return handle, nil
}

// decodeBody decodes a JSON request body into v. An empty body leaves v at
// its zero value.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %w", errInvalidJSON, err)
	}
	return nil
}

func (h *Handler) getPublicProfile(w http.ResponseWriter, r *http.Request) {
	handle, err := handleParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.services.PublicProfileService.GetPublicProfile(r.Context(), handle, r.URL.Query().Get("token"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, profile)
}

func (h *Handler) getEmergencyProfile(w http.ResponseWriter, r *http.Request) {
	handle, err := handleParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.services.PublicProfileService.GetEmergencyProfile(r.Context(), handle, r.URL.Query().Get("token"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Warn().Str("handle", handle).Msg("emergency profile opened")
	writeData(w, profile)
}

func (h *Handler) verifyPassword(w http.ResponseWriter, r *http.Request) {
	handle, err := handleParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.VerifyPasswordRequest
	if err = decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.ChallengeService.VerifyPassword(r.Context(), handle, req.Password)
	h.metrics.observeChallenge(models.AccessPassword, err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeToken(w, token.SignedString)
}

func (h *Handler) requestOTP(w http.ResponseWriter, r *http.Request) {
	handle, err := handleParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.RequestOTPRequest
	if err = decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	message, err := h.services.ChallengeService.RequestOTP(r.Context(), handle, req.Email)
	h.metrics.observeOTPRequest(err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeMessage(w, message)
}

func (h *Handler) verifyOTP(w http.ResponseWriter, r *http.Request) {
	handle, err := handleParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.VerifyOTPRequest
	if err = decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.ChallengeService.VerifyOTP(r.Context(), handle, req.OTP)
	h.metrics.observeChallenge(models.AccessOTP, err)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeToken(w, token.SignedString)
}
