// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// server and the client binaries. It is populated by merging environment
// variables, command-line flags, and an optional JSON or YAML file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token signing settings and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database and the Redis settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the listening addresses of the HTTP and gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the client's view of the remote API.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background job settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Share holds share-link and one-time-code settings.
	Share Share `envPrefix:"SHARE_"`

	// Notify holds OTP delivery settings.
	Notify Notify `envPrefix:"NOTIFY_"`

	// Visit selects the visitor flow of the client. It is normally set with
	// the -share flag.
	Visit Visit `envPrefix:"VISIT_"`

	// FilePath is the optional path to a JSON or YAML configuration file,
	// chosen by extension. Env: CONFIG, flags: -c / -config.
	FilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey signs and verifies every JWT the backend issues.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the lifetime of an owner session token.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// AccessTokenDuration is the lifetime of a visitor access token.
	// Env: APP_ACCESS_TOKEN_DURATION
	AccessTokenDuration time.Duration `env:"ACCESS_TOKEN_DURATION"`

	// EmergencyTokenDuration is the lifetime of an SOS emergency token.
	// Env: APP_EMERGENCY_TOKEN_DURATION
	EmergencyTokenDuration time.Duration `env:"EMERGENCY_TOKEN_DURATION"`

	// Version is exposed via /api/version/.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings. The server
	// expects a PostgreSQL DSN, the client a SQLite file path.
	DB DB `envPrefix:"DB_"`

	// Redis holds the OTP challenge store settings. When Address is empty
	// challenges are kept in process memory.
	Redis Redis `envPrefix:"REDIS_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the data source name.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Redis holds connection settings for the Redis OTP store.
type Redis struct {
	// Address is "host:port". Env: STORAGE_REDIS_ADDRESS
	Address string `env:"ADDRESS"`
	// Password is optional. Env: STORAGE_REDIS_PASSWORD
	Password string `env:"PASSWORD"`
	// DB selects the logical database. Env: STORAGE_REDIS_DB
	DB int `env:"DB"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP server.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health server.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the settings of the client transport.
type Adapter struct {
	// HTTPAddress is the base address of the remote API, with or without
	// scheme. Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// OTPJanitorInterval is how often expired in-memory challenges are purged.
	// Env: WORKERS_OTP_JANITOR_INTERVAL
	OTPJanitorInterval time.Duration `env:"OTP_JANITOR_INTERVAL"`
}

// Share holds share-link and one-time-code settings.
type Share struct {
	// FrontendBaseURL prefixes share links: <FrontendBaseURL>/share/<username>.
	// Env: SHARE_FRONTEND_BASE_URL
	FrontendBaseURL string `env:"FRONTEND_BASE_URL"`

	// OTPTTL is the lifetime of an issued code. Env: SHARE_OTP_TTL
	OTPTTL time.Duration `env:"OTP_TTL"`

	// OTPResendCooldown is the minimum gap between two codes for the same
	// handle. Env: SHARE_OTP_RESEND_COOLDOWN
	OTPResendCooldown time.Duration `env:"OTP_RESEND_COOLDOWN"`

	// OTPMaxAttempts is how many wrong codes burn a challenge.
	// Env: SHARE_OTP_MAX_ATTEMPTS
	OTPMaxAttempts int `env:"OTP_MAX_ATTEMPTS"`

	// OTPLength is the number of digits of a code. Env: SHARE_OTP_LENGTH
	OTPLength int `env:"OTP_LENGTH"`
}

// Notify holds OTP delivery settings.
type Notify struct {
	// AMQPURL enables RabbitMQ delivery when set; codes are only logged
	// otherwise. Env: NOTIFY_AMQP_URL
	AMQPURL string `env:"AMQP_URL"`

	// Queue is the queue OTP messages are published to.
	// Env: NOTIFY_QUEUE
	Queue string `env:"QUEUE"`
}

// Visit selects the visitor flow of the client.
type Visit struct {
	// Handle is the profile to open. Env: VISIT_HANDLE, flag: -share
	Handle string `env:"HANDLE"`

	// EmergencyToken opens the emergency view instead of the gated one.
	// Env: VISIT_EMERGENCY_TOKEN, flag: -emergency-token
	EmergencyToken string `env:"EMERGENCY_TOKEN"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following order (last source wins for non-zero
// fields):
//  1. Environment variables
//  2. Command-line flags
//  3. Config file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags().
		withFile().
		build()
}
