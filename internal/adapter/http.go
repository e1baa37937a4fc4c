package adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/logger"
	"github.com/MKhiriev/go-health-share/internal/utils"
	"github.com/MKhiriev/go-health-share/models"
	"github.com/go-resty/resty/v2"
)

const (
	publicProfilePath    = "/api/public/profile/{handle}"
	verifyPasswordPath   = "/api/public/profile/{handle}/verify-password"
	requestOTPPath       = "/api/public/profile/{handle}/request-otp"
	verifyOTPPath        = "/api/public/profile/{handle}/verify-otp"
	emergencyProfilePath = "/api/public/emergency/{handle}"
	registerPath         = "/api/auth/register"
	loginPath            = "/api/auth/login"
	profilePath          = "/api/profile"
	sosPath              = "/api/emergency/sos"
	versionPath          = "/api/version/"
)

type httpServerAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPServerAdapter returns a REST [ServerAdapter] bound to
// cfg.HTTPAddress.
func NewHTTPServerAdapter(cfg config.ClientAdapter, log *logger.Logger) (ServerAdapter, error) {
	if strings.TrimSpace(cfg.HTTPAddress) == "" {
		return nil, errors.New("adapter: empty server address")
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}

	client := utils.NewHTTPClient(cfg.HTTPAddress, cfg.RequestTimeout)
	client.OnAfterResponse(logCall(log))

	return &httpServerAdapter{client: client, logger: log}, nil
}

// logCall logs every API call by path only. Visitor access tokens travel in
// the query string and must not reach the log file.
func logCall(log *logger.Logger) resty.ResponseMiddleware {
	return func(_ *resty.Client, resp *resty.Response) error {
		path, withToken := resp.Request.URL, false
		if raw := resp.Request.RawRequest; raw != nil && raw.URL != nil {
			path = raw.URL.Path
			withToken = raw.URL.Query().Has("token")
		} else if i := strings.IndexByte(path, '?'); i >= 0 {
			withToken = strings.Contains(path[i:], "token=")
			path = path[:i]
		}

		log.Debug().
			Str("method", resp.Request.Method).
			Str("path", path).
			Bool("with_token", withToken).
			Int("status", resp.StatusCode()).
			Dur("duration", resp.Time()).
			Msg("api call")
		return nil
	}
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// ── visitor endpoints ─────────────────────────────────────────────────────────

func (h *httpServerAdapter) GetPublicProfile(ctx context.Context, handle, token string) (models.PublicProfile, error) {
	return h.getProfileView(ctx, "get public profile", publicProfilePath, handle, token)
}

func (h *httpServerAdapter) GetEmergencyProfile(ctx context.Context, handle, token string) (models.PublicProfile, error) {
	return h.getProfileView(ctx, "get emergency profile", emergencyProfilePath, handle, token)
}

func (h *httpServerAdapter) getProfileView(ctx context.Context, op, path, handle, token string) (models.PublicProfile, error) {
	req := h.publicRequest(ctx, handle)
	if token != "" {
		req.SetQueryParam("token", token)
	}

	resp, err := req.Get(path)
	if err != nil {
		return models.PublicProfile{}, mapTransportError(op, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PublicProfile{}, err
	}

	env, err := decodeEnvelope[*models.PublicProfile](resp)
	if err != nil {
		return models.PublicProfile{}, fmt.Errorf("%s: %w", op, err)
	}
	if env.RequiresAuth {
		return models.PublicProfile{}, &AuthRequiredError{AccessType: env.AccessType, Message: env.Message}
	}
	if !env.Success || env.Data == nil {
		return models.PublicProfile{}, &RejectedError{
			Status:  resp.StatusCode(),
			Code:    env.Code,
			Message: env.Message,
			Err:     ErrNotFound,
		}
	}

	return *env.Data, nil
}

func (h *httpServerAdapter) VerifyPassword(ctx context.Context, handle, password string) (string, error) {
	return h.exchange(ctx, "verify password", verifyPasswordPath, handle, models.VerifyPasswordRequest{Password: password})
}

func (h *httpServerAdapter) VerifyOTP(ctx context.Context, handle, code string) (string, error) {
	return h.exchange(ctx, "verify otp", verifyOTPPath, handle, models.VerifyOTPRequest{OTP: code})
}

// exchange posts a credential and returns the access token of a successful
// answer.
func (h *httpServerAdapter) exchange(ctx context.Context, op, path, handle string, body any) (string, error) {
	resp, err := h.publicRequest(ctx, handle).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(path)
	if err != nil {
		return "", mapTransportError(op, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	env, err := decodeEnvelope[any](resp)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !env.Success {
		sentinel := ErrUnauthorized
		if env.Code == models.CodeOTPExpired {
			sentinel = ErrOTPExpired
		}
		return "", &RejectedError{Status: resp.StatusCode(), Code: env.Code, Message: env.Message, Err: sentinel}
	}
	if env.Token == "" {
		return "", fmt.Errorf("%s: %w", op, ErrMissingToken)
	}

	return env.Token, nil
}

func (h *httpServerAdapter) RequestOTP(ctx context.Context, handle, email string) (string, error) {
	resp, err := h.publicRequest(ctx, handle).
		SetHeader("Content-Type", "application/json").
		SetBody(models.RequestOTPRequest{Email: email}).
		Post(requestOTPPath)
	if err != nil {
		return "", mapTransportError("request otp", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	env, err := decodeEnvelope[any](resp)
	if err != nil {
		return "", fmt.Errorf("request otp: %w", err)
	}
	if !env.Success {
		return "", &RejectedError{Status: resp.StatusCode(), Code: env.Code, Message: env.Message, Err: ErrBadRequest}
	}

	return env.Message, nil
}

// ── owner endpoints ───────────────────────────────────────────────────────────

func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.LoginResponse, error) {
	return h.authenticate(ctx, "register", registerPath, req)
}

func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.LoginResponse, error) {
	return h.authenticate(ctx, "login", loginPath, req)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, op, path string, body any) (models.LoginResponse, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(path)
	if err != nil {
		return models.LoginResponse{}, mapTransportError(op, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	env, err := decodeEnvelope[models.LoginResponse](resp)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("%s: %w", op, err)
	}
	if env.Data.AccessToken == "" {
		return models.LoginResponse{}, fmt.Errorf("%s: %w", op, ErrMissingToken)
	}

	h.SetToken(env.Data.AccessToken)
	return env.Data, nil
}

func (h *httpServerAdapter) GetProfile(ctx context.Context) (models.ProfileSettings, error) {
	resp, err := h.authedRequest(ctx).Get(profilePath)
	if err != nil {
		return models.ProfileSettings{}, mapTransportError("get profile", err)
	}
	return decodeData[models.ProfileSettings]("get profile", resp)
}

func (h *httpServerAdapter) UpdateProfile(ctx context.Context, update models.ProfileUpdate) (models.ProfileSettings, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		Put(profilePath)
	if err != nil {
		return models.ProfileSettings{}, mapTransportError("update profile", err)
	}
	return decodeData[models.ProfileSettings]("update profile", resp)
}

func (h *httpServerAdapter) TriggerSOS(ctx context.Context) (models.EmergencyAccess, error) {
	resp, err := h.authedRequest(ctx).Post(sosPath)
	if err != nil {
		return models.EmergencyAccess{}, mapTransportError("trigger sos", err)
	}
	return decodeData[models.EmergencyAccess]("trigger sos", resp)
}

func (h *httpServerAdapter) GetServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get(versionPath)
	if err != nil {
		return "", mapTransportError("get server version", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func decodeData[T any](op string, resp *resty.Response) (T, error) {
	var zero T
	if err := mapHTTPError(resp); err != nil {
		return zero, err
	}

	env, err := decodeEnvelope[T](resp)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}
	if !env.Success {
		return zero, &RejectedError{Status: resp.StatusCode(), Code: env.Code, Message: env.Message, Err: ErrBadRequest}
	}
	return env.Data, nil
}

func (h *httpServerAdapter) publicRequest(ctx context.Context, handle string) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetPathParam("handle", handle)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
