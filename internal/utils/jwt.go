package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-progress-tracker/models"
	"github.com/golang-jwt/jwt/v5"
)

// bearerPrefix is the only accepted Authorization scheme.
const bearerPrefix = "Bearer "

// ErrInvalidAuthorizationHeader is returned by ParseBearerToken.
var ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

// GenerateJWTToken creates an HS256 token for userID issued now.
//
// The token carries the standard claims:
//   - iss: issuer
//   - sub: userID
//   - iat: the issue time
//   - exp: the issue time plus tokenDuration
//
// The issue time is truncated to jwt.TimePrecision first, so exp - iat is
// exactly tokenDuration and the token expires at the instant iat names.
func GenerateJWTToken(issuer, userID string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	return GenerateJWTTokenAt(issuer, userID, time.Now(), tokenDuration, signKey)
}

// GenerateJWTTokenAt is GenerateJWTToken with an explicit issue time.
func GenerateJWTTokenAt(issuer, userID string, now time.Time, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || userID == "" || tokenDuration <= 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now = now.Truncate(jwt.TimePrecision)
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{
		Token:            token,
		RegisteredClaims: claims,
		SignedString:     tokenString,
		UserID:           userID,
	}, nil
}

// ValidateAndParseJWTToken verifies the signature, algorithm, issuer and
// expiry of tokenString and returns its claims.
//
// The returned error wraps jwt.ErrTokenExpired when only the expiry check
// failed, so callers can tell the two apart in logs.
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	return ValidateAndParseJWTTokenAt(tokenString, tokenSignKey, tokenIssuer, time.Now())
}

// ValidateAndParseJWTTokenAt is ValidateAndParseJWTToken evaluated at now.
func ValidateAndParseJWTTokenAt(tokenString, tokenSignKey, tokenIssuer string, now time.Time) (models.Token, error) {
	var parsed models.Token
	token, err := jwt.ParseWithClaims(tokenString, &parsed.RegisteredClaims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	parsed.Token = token
	parsed.SignedString = tokenString
	userID, err := parsed.GetUserID()
	if err != nil {
		return models.Token{}, err
	}
	parsed.UserID = userID

	return parsed, nil
}

// IsTokenExpired reports whether err came from an expired token.
func IsTokenExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. Any other scheme or an empty token is rejected.
func ParseBearerToken(authorizationHeader string) (string, error) {
	if !strings.HasPrefix(authorizationHeader, bearerPrefix) {
		return "", ErrInvalidAuthorizationHeader
	}

	token := strings.TrimSpace(strings.TrimPrefix(authorizationHeader, bearerPrefix))
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrInvalidAuthorizationHeader
	}

	return token, nil
}

// ParseUnverifiedClaims reads the claims of a token without checking its
// signature. The client uses it to learn the expiry of its own session token.
func ParseUnverifiedClaims(tokenString string) (models.Token, error) {
	var parsed models.Token
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, &parsed.RegisteredClaims)
	if err != nil {
		return models.Token{}, err
	}

	parsed.Token = token
	parsed.SignedString = tokenString
	userID, err := parsed.GetUserID()
	if err != nil {
		return models.Token{}, err
	}
	parsed.UserID = userID

	return parsed, nil
}
