package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-health-share/internal/service"
	"github.com/MKhiriev/go-health-share/models"
)

func TestNewHandler(t *testing.T) {
	h, _ := newTestHandler(t)

	assert.NotNil(t, h.services)
	assert.NotNil(t, h.metrics)
	assert.NotNil(t, h.logger)
}

func TestInit_OwnerRoutesRequireSession(t *testing.T) {
	for _, rc := range []struct{ method, path string }{
		{http.MethodGet, "/api/profile"},
		{http.MethodPut, "/api/profile"},
		{http.MethodPost, "/api/emergency/sos"},
	} {
		t.Run(rc.method+" "+rc.path, func(t *testing.T) {
			h, _ := newTestHandler(t)

			rec := do(t, h.Init(), rc.method, rc.path, nil, nil)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(t, h.Init(), http.MethodGet, "/api/nonexistent", nil, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, decodeEnvelope[any](t, rec).Success)
}

func TestInit_WrongMethodReturns404(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(t, h.Init(), http.MethodDelete, "/api/public/profile/jane-doe/verify-password", nil, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_Version(t *testing.T) {
	h, m := newTestHandler(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v1.2.3")

	rec := do(t, h.Init(), http.MethodGet, "/api/version/", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, "v1.2.3", rec.Body.String())
}

func TestInit_TraceIDHeader(t *testing.T) {
	h, m := newTestHandler(t)
	m.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v1").Times(2)
	router := h.Init()

	rec := do(t, router, http.MethodGet, "/api/version/", nil, nil)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))

	rec = do(t, router, http.MethodGet, "/api/version/", nil, http.Header{traceIDHeader: {"trace-1"}})
	assert.Equal(t, "trace-1", rec.Header().Get(traceIDHeader))
}

func TestInit_MetricsUseRoutePatterns(t *testing.T) {
	h, m := newTestHandler(t)
	m.public.EXPECT().GetPublicProfile(gomock.Any(), "jane-doe", "").
		Return(models.PublicProfile{}, service.ErrProfileNotShared)
	m.challenges.EXPECT().VerifyPassword(gomock.Any(), "jane-doe", "nope").
		Return(models.Token{}, service.ErrWrongPassword)
	router := h.Init()

	do(t, router, http.MethodGet, "/api/public/profile/jane-doe", nil, nil)
	do(t, router, http.MethodPost, "/api/public/profile/jane-doe/verify-password",
		models.VerifyPasswordRequest{Password: "nope"}, nil)

	rec := do(t, router, http.MethodGet, "/metrics", nil, nil)
	body := rec.Body.String()

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body, `route="/api/public/profile/{handle}`)
	assert.Contains(t, body, `status="404"`)
	assert.Contains(t, body, `share_challenge_attempts_total{access_type="password",result="rejected"} 1`)
	assert.False(t, strings.Contains(body, "jane-doe"))
}
