package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors [StructuredConfig] for JSON and YAML files.
type fileConfig struct {
	App struct {
		TokenSignKey           string   `json:"token_sign_key" yaml:"token_sign_key"`
		TokenIssuer            string   `json:"token_issuer" yaml:"token_issuer"`
		TokenDuration          Duration `json:"token_duration" yaml:"token_duration"`
		AccessTokenDuration    Duration `json:"access_token_duration" yaml:"access_token_duration"`
		EmergencyTokenDuration Duration `json:"emergency_token_duration" yaml:"emergency_token_duration"`
		Version                string   `json:"version" yaml:"version"`
	} `json:"app" yaml:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
		Redis struct {
			Address  string `json:"address" yaml:"address"`
			Password string `json:"password" yaml:"password"`
			DB       int    `json:"db" yaml:"db"`
		} `json:"redis" yaml:"redis"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		GRPCAddress    string   `json:"grpc_address" yaml:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"server" yaml:"server"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"adapter" yaml:"adapter"`

	Workers struct {
		OTPJanitorInterval Duration `json:"otp_janitor_interval" yaml:"otp_janitor_interval"`
	} `json:"workers" yaml:"workers"`

	Share struct {
		FrontendBaseURL   string   `json:"frontend_base_url" yaml:"frontend_base_url"`
		OTPTTL            Duration `json:"otp_ttl" yaml:"otp_ttl"`
		OTPResendCooldown Duration `json:"otp_resend_cooldown" yaml:"otp_resend_cooldown"`
		OTPMaxAttempts    int      `json:"otp_max_attempts" yaml:"otp_max_attempts"`
		OTPLength         int      `json:"otp_length" yaml:"otp_length"`
	} `json:"share" yaml:"share"`

	Notify struct {
		AMQPURL string `json:"amqp_url" yaml:"amqp_url"`
		Queue   string `json:"queue" yaml:"queue"`
	} `json:"notify" yaml:"notify"`
}

// parseFile reads a config file. Files ending in .yaml or .yml are decoded
// as YAML, files ending in .json as JSON.
func parseFile(path string) (*StructuredConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}
	defer f.Close()

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.NewDecoder(f).Decode(&fc)
	case ".yaml", ".yml":
		err = yaml.NewDecoder(f).Decode(&fc)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedConfigFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding config file %s: %w", path, err)
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	cfg := &StructuredConfig{}

	cfg.App = App{
		TokenSignKey:           fc.App.TokenSignKey,
		TokenIssuer:            fc.App.TokenIssuer,
		TokenDuration:          time.Duration(fc.App.TokenDuration),
		AccessTokenDuration:    time.Duration(fc.App.AccessTokenDuration),
		EmergencyTokenDuration: time.Duration(fc.App.EmergencyTokenDuration),
		Version:                fc.App.Version,
	}
	cfg.Storage = Storage{
		DB: DB{DSN: fc.Storage.DB.DSN},
		Redis: Redis{
			Address:  fc.Storage.Redis.Address,
			Password: fc.Storage.Redis.Password,
			DB:       fc.Storage.Redis.DB,
		},
	}
	cfg.Server = Server{
		HTTPAddress:    fc.Server.HTTPAddress,
		GRPCAddress:    fc.Server.GRPCAddress,
		RequestTimeout: time.Duration(fc.Server.RequestTimeout),
	}
	cfg.Adapter = Adapter{
		HTTPAddress:    fc.Adapter.HTTPAddress,
		RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
	}
	cfg.Workers = Workers{
		OTPJanitorInterval: time.Duration(fc.Workers.OTPJanitorInterval),
	}
	cfg.Share = Share{
		FrontendBaseURL:   fc.Share.FrontendBaseURL,
		OTPTTL:            time.Duration(fc.Share.OTPTTL),
		OTPResendCooldown: time.Duration(fc.Share.OTPResendCooldown),
		OTPMaxAttempts:    fc.Share.OTPMaxAttempts,
		OTPLength:         fc.Share.OTPLength,
	}
	cfg.Notify = Notify{
		AMQPURL: fc.Notify.AMQPURL,
		Queue:   fc.Notify.Queue,
	}

	return cfg
}

// Duration is a wrapper around time.Duration that decodes from strings like
// "1h" or "30s" as well as from integer nanoseconds.
type Duration time.Duration

// UnmarshalJSON implements [json.Unmarshaler].
func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

// UnmarshalYAML implements [yaml.Unmarshaler].
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	if n, err := time.ParseDuration(s); err == nil {
		*d = Duration(n)
		return nil
	}

	var ns int64
	if err := node.Decode(&ns); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(ns)
	return nil
}

// MarshalJSON implements [json.Marshaler].
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
