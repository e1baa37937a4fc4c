package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-health-share/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenScope is returned by [ValidateAndParseJWTToken] when a valid token
// was issued for another purpose.
var ErrTokenScope = errors.New("token scope mismatch")

// GenerateJWTToken signs an HMAC-SHA256 JWT carrying claims.
//
// Subject and Scope must be set by the caller. Issuer, IssuedAt, ExpiresAt and
// a random ID are filled in here.
//
//	token, err := utils.GenerateJWTToken("share", models.AccessClaims{
//	    RegisteredClaims: jwt.RegisteredClaims{Subject: "jane-doe"},
//	    Scope:            models.ScopeProfile,
//	    AccessType:       models.AccessOTP,
//	}, time.Hour, "secret")
func GenerateJWTToken(issuer string, claims models.AccessClaims, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration <= 0 || signKey == "" || claims.Subject == "" || claims.Scope == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims.Issuer = issuer
	claims.ID = NewUUIDGenerator().Generate()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(tokenDuration))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{Token: token, AccessClaims: claims, SignedString: tokenString}, nil
}

// ValidateAndParseJWTToken verifies the signature, issuer and expiry of
// tokenString and checks that it was issued for scope.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string, scope models.TokenScope) (models.Token, error) {
	var claims models.AccessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Token{}, errors.New("empty subject error")
	}
	if claims.Scope != scope {
		return models.Token{}, fmt.Errorf("%w: want %q, got %q", ErrTokenScope, scope, claims.Scope)
	}

	return models.Token{Token: token, AccessClaims: claims, SignedString: tokenString}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
