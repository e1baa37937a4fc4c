package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/mock"
	"github.com/MKhiriev/go-health-share/internal/service"
	"github.com/MKhiriev/go-health-share/models"
)

type testMocks struct {
	public     *mock.MockPublicProfileService
	challenges *mock.MockChallengeService
	profiles   *mock.MockProfileService
	auth       *mock.MockAuthService
	appInfo    *mock.MockAppInfoService
}

func newTestHandler(t *testing.T) (*Handler, testMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := testMocks{
		public:     mock.NewMockPublicProfileService(ctrl),
		challenges: mock.NewMockChallengeService(ctrl),
		profiles:   mock.NewMockProfileService(ctrl),
		auth:       mock.NewMockAuthService(ctrl),
		appInfo:    mock.NewMockAppInfoService(ctrl),
	}

	h := NewHandler(&service.Services{
		AuthService:          m.auth,
		PublicProfileService: m.public,
		ChallengeService:     m.challenges,
		ProfileService:       m.profiles,
		AppInfoService:       m.appInfo,
	}, logger.Nop())

	return h, m
}

func do(t *testing.T, h http.Handler, method, target string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, r)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) models.Envelope[T] {
	t.Helper()

	var env models.Envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func sessionToken(userID int64) models.Token {
	return models.Token{
		AccessClaims: models.AccessClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: strconv.FormatInt(userID, 10)},
			Scope:            models.ScopeSession,
		},
		SignedString: "session-token",
	}
}

func bearer(token string) http.Header {
	return http.Header{"Authorization": {"Bearer " + token}}
}

func ptr[T any](v T) *T { return &v }
