// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

// defaults returns the values used when no source sets a field.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:            "go-health-share",
			TokenDuration:          24 * time.Hour,
			AccessTokenDuration:    time.Hour,
			EmergencyTokenDuration: 24 * time.Hour,
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			GRPCAddress:    "localhost:9090",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 15 * time.Second,
		},
		Workers: Workers{
			OTPJanitorInterval: time.Minute,
		},
		Share: Share{
			FrontendBaseURL:   "http://localhost:8080",
			OTPTTL:            5 * time.Minute,
			OTPResendCooldown: 30 * time.Second,
			OTPMaxAttempts:    5,
			OTPLength:         6,
		},
		Notify: Notify{
			Queue: "share.otp",
		},
	}
}
