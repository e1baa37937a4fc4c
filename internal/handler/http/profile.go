package http

import (
	"net/http"

	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/utils"
	"github.com/MKhiriev/go-health-share/models"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	settings, err := h.services.ProfileService.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, settings)
}

// updateProfile applies a partial update. Keys missing from the body leave
// the stored values untouched.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	var update models.ProfileUpdate
	if err := decodeBody(r, &update); err != nil {
		writeError(w, r, err)
		return
	}

	settings, err := h.services.ProfileService.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, settings)
}

func (h *Handler) triggerSOS(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	access, err := h.services.ProfileService.TriggerSOS(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	h.metrics.sosTriggered.Inc()
	logger.FromRequest(r).Warn().Int64("user_id", userID).Time("expires_at", access.ExpiresAt).Msg("emergency token issued")
	writeData(w, access)
}
