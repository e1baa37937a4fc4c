// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, env any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(env))
}

func strPtr(s string) *string { return &s }

func TestNewHTTPServerAdapter_EmptyAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{}, logger.Nop())
	require.Error(t, err)
}

// ── GetPublicProfile ──────────────────────────────────────────────────────────

func TestGetPublicProfile_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/public/profile/jane-doe", r.URL.Path)
		assert.Equal(t, "abc", r.URL.Query().Get("token"))
		assert.Empty(t, r.Header.Get("Authorization"), "public calls carry no owner credential")

		writeEnvelope(t, w, http.StatusOK, models.Envelope[models.PublicProfile]{
			Success: true,
			Data:    models.PublicProfile{Name: strPtr("Jane Doe"), BloodType: strPtr("O+")},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("owner-session")

	got, err := a.GetPublicProfile(context.Background(), "jane-doe", "abc")

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", *got.Name)
	assert.Equal(t, "O+", *got.BloodType)
	assert.Nil(t, got.Allergies)
}

func TestGetPublicProfile_LogOmitsAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, models.Envelope[models.PublicProfile]{Success: true})
	}))
	defer srv.Close()

	var buf bytes.Buffer
	a, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: srv.URL, RequestTimeout: time.Second}, logger.New(&buf, "test"))
	require.NoError(t, err)

	_, err = a.GetPublicProfile(context.Background(), "jane-doe", "secret-access-token")
	require.NoError(t, err)

	line := buf.String()
	assert.Contains(t, line, `"path":"/api/public/profile/jane-doe"`)
	assert.Contains(t, line, `"with_token":true`)
	assert.NotContains(t, line, "secret-access-token")
}

func TestGetPublicProfile_NoTokenOmitsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("token"))
		writeEnvelope(t, w, http.StatusOK, models.Envelope[models.PublicProfile]{Success: true, Data: models.PublicProfile{}})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).GetPublicProfile(context.Background(), "jane-doe", "")
	require.NoError(t, err)
}

func TestGetPublicProfile_EscapesHandle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/public/profile/a%2Fb", r.URL.EscapedPath())
		writeEnvelope(t, w, http.StatusNotFound, models.Envelope[any]{Message: "Profile not found"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).GetPublicProfile(context.Background(), "a/b", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPublicProfile_RequiresAuth401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusUnauthorized, models.Envelope[any]{
			RequiresAuth: true,
			AccessType:   models.AccessOTP,
			Message:      "Verification required",
		})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).GetPublicProfile(context.Background(), "jane-doe", "")

	var authErr *AuthRequiredError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, models.AccessOTP, authErr.AccessType)
}

func TestGetPublicProfile_RequiresAuthIn200Envelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, models.Envelope[any]{RequiresAuth: true, AccessType: models.AccessPassword})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).GetPublicProfile(context.Background(), "jane-doe", "")

	var authErr *AuthRequiredError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, models.AccessPassword, authErr.AccessType)
}

func TestGetPublicProfile_NotFoundCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusNotFound, models.Envelope[any]{Message: "This profile is not available"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).GetPublicProfile(context.Background(), "jane-doe", "")

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusNotFound, rejected.Status)
	assert.Equal(t, "This profile is not available", rejected.Message)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, IsRetryable(err))
}

func TestGetPublicProfile_ServerErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).GetPublicProfile(context.Background(), "jane-doe", "")

	assert.ErrorIs(t, err, ErrBadGateway)
	assert.True(t, IsRetryable(err))

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "upstream down", rejected.Message)
}

func TestGetPublicProfile_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestAdapter(t, url).GetPublicProfile(context.Background(), "jane-doe", "")

	assert.ErrorIs(t, err, ErrTransport)
	assert.True(t, IsRetryable(err))
}

func TestGetPublicProfile_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).GetPublicProfile(context.Background(), "jane-doe", "")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestGetEmergencyProfile_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/public/emergency/jane-doe", r.URL.Path)
		assert.Equal(t, "sos", r.URL.Query().Get("token"))
		writeEnvelope(t, w, http.StatusOK, models.Envelope[models.PublicProfile]{
			Success: true,
			Data:    models.PublicProfile{BloodType: strPtr("O+"), EmergencyMode: true},
		})
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).GetEmergencyProfile(context.Background(), "jane-doe", "sos")

	require.NoError(t, err)
	assert.True(t, got.EmergencyMode)
}

// ── VerifyPassword / VerifyOTP ────────────────────────────────────────────────

func TestVerifyPassword_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/public/profile/jane-doe/verify-password", r.URL.Path)

		var body models.VerifyPasswordRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "s3cret", body.Password)

		writeEnvelope(t, w, http.StatusOK, models.Envelope[any]{Success: true, Token: "tok"})
	}))
	defer srv.Close()

	token, err := newTestAdapter(t, srv.URL).VerifyPassword(context.Background(), "jane-doe", "s3cret")

	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestVerifyPassword_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusUnauthorized, models.Envelope[any]{Message: "Incorrect password"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).VerifyPassword(context.Background(), "jane-doe", "nope")

	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Incorrect password", rejected.Message)
}

func TestVerifyPassword_SuccessWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, models.Envelope[any]{Success: true})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).VerifyPassword(context.Background(), "jane-doe", "pw")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestVerifyOTP_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/public/profile/jane-doe/verify-otp", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "482913", body["otp"])

		writeEnvelope(t, w, http.StatusOK, models.Envelope[any]{Success: true, Token: "abc"})
	}))
	defer srv.Close()

	token, err := newTestAdapter(t, srv.URL).VerifyOTP(context.Background(), "jane-doe", "482913")

	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}

func TestVerifyOTP_Expired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusUnauthorized, models.Envelope[any]{Code: models.CodeOTPExpired, Message: "Code expired"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).VerifyOTP(context.Background(), "jane-doe", "000000")

	assert.ErrorIs(t, err, ErrOTPExpired)
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

// ── RequestOTP ────────────────────────────────────────────────────────────────

func TestRequestOTP_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/public/profile/jane-doe/request-otp", r.URL.Path)

		var body models.RequestOTPRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "visitor@example.com", body.Email)

		writeEnvelope(t, w, http.StatusOK, models.Envelope[any]{Success: true, Message: "Code sent"})
	}))
	defer srv.Close()

	msg, err := newTestAdapter(t, srv.URL).RequestOTP(context.Background(), "jane-doe", "visitor@example.com")

	require.NoError(t, err)
	assert.Equal(t, "Code sent", msg)
}

func TestRequestOTP_Cooldown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusTooManyRequests, models.Envelope[any]{Code: models.CodeOTPCooldown, Message: "Wait a moment"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).RequestOTP(context.Background(), "jane-doe", "")
	assert.ErrorIs(t, err, ErrTooManyRequests)
}

func TestRequestOTP_DeliveryFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusBadGateway, models.Envelope[any]{Code: models.CodeOTPDeliveryFailed, Message: "Could not send"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).RequestOTP(context.Background(), "jane-doe", "")
	assert.ErrorIs(t, err, ErrOTPDeliveryFailed)
	assert.NotErrorIs(t, err, ErrBadGateway)
}

// ── owner endpoints ───────────────────────────────────────────────────────────

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var body models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jane@example.com", body.EmailOrPhone)

		writeEnvelope(t, w, http.StatusOK, models.Envelope[models.LoginResponse]{
			Success: true,
			Data:    models.LoginResponse{AccessToken: "session", User: models.User{UserID: 7, Username: "jane-doe"}},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Login(context.Background(), models.LoginRequest{EmailOrPhone: "jane@example.com", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.User.UserID)
	assert.Equal(t, "session", a.Token())
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusUnauthorized, models.Envelope[any]{Message: "Invalid credentials"})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Login(context.Background(), models.LoginRequest{EmailOrPhone: "jane", Password: "bad"})

	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, a.Token())
}

func TestRegister_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		writeEnvelope(t, w, http.StatusConflict, models.Envelope[any]{Message: "Username taken"})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Register(context.Background(), models.RegisterRequest{Username: "jane-doe"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateProfile_SendsPartialBodyWithBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/profile", r.URL.Path)
		assert.Equal(t, "Bearer session", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"isPublicProfile": false}, body)

		writeEnvelope(t, w, http.StatusOK, models.Envelope[models.ProfileSettings]{
			Success: true,
			Data:    models.ProfileSettings{Username: "jane-doe"},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("session")

	off := false
	got, err := a.UpdateProfile(context.Background(), models.ProfileUpdate{IsPublicProfile: &off})

	require.NoError(t, err)
	assert.Equal(t, "jane-doe", got.Username)
}

func TestUpdateProfile_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusBadRequest, models.Envelope[any]{Message: "unknown field \"ssn\""})
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).UpdateProfile(context.Background(), models.ProfileUpdate{})
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestGetProfile_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).GetProfile(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTriggerSOS_Success(t *testing.T) {
	expires := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/emergency/sos", r.URL.Path)
		writeEnvelope(t, w, http.StatusOK, models.Envelope[models.EmergencyAccess]{
			Success: true,
			Data:    models.EmergencyAccess{Token: "sos", ExpiresAt: expires},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("session")
	got, err := a.TriggerSOS(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "sos", got.Token)
	assert.True(t, expires.Equal(got.ExpiresAt))
}

func TestGetServerVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version/", r.URL.Path)
		_, _ = w.Write([]byte("1.4.0\n"))
	}))
	defer srv.Close()

	v, err := newTestAdapter(t, srv.URL).GetServerVersion(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "1.4.0", v)
}

func TestSetToken_Trims(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:1")
	a.SetToken("  tok \n")
	assert.Equal(t, "tok", a.Token())
}
