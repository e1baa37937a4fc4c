package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-health-share/internal/config"
	"github.com/MKhiriev/go-health-share/internal/utils"
	"github.com/MKhiriev/go-health-share/models"
)

func ptr[T any](v T) *T { return &v }

var testAppConfig = config.App{
	TokenSignKey:           "test-sign-key",
	TokenIssuer:            "go-health-share-test",
	TokenDuration:          time.Hour,
	AccessTokenDuration:    time.Hour,
	EmergencyTokenDuration: time.Hour,
	Version:                "1.2.3",
}

var testShareConfig = config.Share{
	FrontendBaseURL:   "https://health.example.com",
	OTPTTL:            5 * time.Minute,
	OTPResendCooldown: 30 * time.Second,
	OTPMaxAttempts:    3,
	OTPLength:         6,
}

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// testProfile returns jane-doe with every attribute filled in and only name
// and bloodType public.
func testProfile(accessType models.AccessType) models.OwnerProfile {
	return models.OwnerProfile{
		UserID:   42,
		Username: "jane-doe",
		Email:    "jane@example.com",
		Attributes: models.PublicProfile{
			Name:              ptr("Jane Doe"),
			DateOfBirth:       ptr("1990-04-12"),
			Gender:            ptr("female"),
			BloodType:         ptr("O+"),
			Allergies:         []string{"peanuts"},
			ChronicConditions: []string{"asthma"},
			EmergencyContact:  &models.EmergencyContact{Name: "John Doe", Phone: "+100200300"},
		},
		Share: models.SharePolicy{
			IsPublic:     true,
			AccessType:   accessType,
			PublicFields: models.FieldSet{models.FieldFullName, models.FieldBloodType},
		},
		Emergency: models.EmergencyPolicy{
			Enabled:          true,
			ShowCriticalOnly: true,
			CriticalFields:   models.DefaultCriticalFields,
		},
	}
}

func signToken(t *testing.T, subject string, scope models.TokenScope, accessType models.AccessType) string {
	t.Helper()

	token, err := utils.GenerateJWTToken(testAppConfig.TokenIssuer, models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
		Scope:            scope,
		AccessType:       accessType,
	}, time.Hour, testAppConfig.TokenSignKey)
	require.NoError(t, err)

	return token.SignedString
}

func parseToken(t *testing.T, token string, scope models.TokenScope) models.Token {
	t.Helper()

	parsed, err := utils.ValidateAndParseJWTToken(token, testAppConfig.TokenSignKey, testAppConfig.TokenIssuer, scope)
	require.NoError(t, err)

	return parsed
}
