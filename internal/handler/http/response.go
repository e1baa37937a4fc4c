package http

import (
	"net/http"

	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/utils"
	"github.com/MKhiriev/go-health-share/models"
)

// writeData answers 200 with a successful envelope carrying data.
func writeData[T any](w http.ResponseWriter, data T) {
	utils.WriteJSON(w, models.Envelope[T]{Success: true, Data: data}, http.StatusOK)
}

// writeToken answers 200 with a successful token envelope.
func writeToken(w http.ResponseWriter, token string) {
	utils.WriteJSON(w, models.Envelope[any]{Success: true, Token: token}, http.StatusOK)
}

// writeMessage answers 200 with a successful envelope carrying a display
// message.
func writeMessage(w http.ResponseWriter, message string) {
	utils.WriteJSON(w, models.Envelope[any]{Success: true, Message: message}, http.StatusOK)
}

// writeError maps err to its status and envelope. Server errors are logged
// at error level, the rest at info.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := envelopeFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Info().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, env, status)
}
