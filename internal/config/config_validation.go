// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
	"strings"
)

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	// the visitor flow never touches local storage
	if !cfg.VisitorMode() && (cfg.Storage.DSN == "" || strings.Contains(cfg.Storage.DSN, "memory")) {
		return ErrInvalidStorageConfigs
	}

	if !validBaseURL(cfg.Share.FrontendBaseURL) {
		return ErrInvalidShareConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" ||
		cfg.App.TokenDuration <= 0 || cfg.App.AccessTokenDuration <= 0 || cfg.App.EmergencyTokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Share.OTPTTL <= 0 || cfg.Share.OTPMaxAttempts < 1 ||
		cfg.Share.OTPLength < 4 || cfg.Share.OTPLength > 10 || cfg.Share.OTPResendCooldown < 0 {
		return ErrInvalidShareConfigs
	}

	if cfg.Storage.Redis.Address == "" && cfg.Workers.OTPJanitorInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func validBaseURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
