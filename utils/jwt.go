package utils

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"mindhaven/config"

	"github.com/golang-jwt/jwt"
	"go.uber.org/zap"
)

// Roles carried in the token's "role" claim.
const (
	RolePatient   = "patient"
	RoleTherapist = "therapist"
)

func secretKey() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateToken creates a signed JWT for the given subject (patient or
// therapist ID) and role. The token expires after the specified duration.
func GenerateToken(subject, role string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// IsTokenRevoked checks the shared auth cache for a revocation entry. The
// identity service writes these on logout or credential reset; here we only
// read. Fails open on cache errors so an auth-cache outage does not take the
// whole API down.
func IsTokenRevoked(ctx context.Context, tokenString string) bool {
	client := GetAuthCacheClient()
	if client == nil {
		return false
	}
	exists, err := client.Exists(ctx, "revoked:"+HashToken(tokenString)).Result()
	if err != nil {
		GetLogger().Warn("auth cache lookup failed", zap.Error(err))
		return false
	}
	return exists > 0
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractIdentityFromToken returns the subject ID and role claims from a
// valid token string.
func ExtractIdentityFromToken(tokenString string) (id string, role string, err error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token claims")
	}
	id, _ = claims["sub"].(string)
	role, _ = claims["role"].(string)
	if id == "" || role == "" {
		return "", "", errors.New("token missing subject or role")
	}
	return id, role, nil
}
