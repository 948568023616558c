package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"consultorio/config"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const defaultSecret = "consultorio-dev-secret"

var ErrInvalidToken = errors.New("invalid token")

// Claims is what every access token carries.
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

func secretKey() []byte {
	if s := config.AppConfig.JWTSecret; s != "" {
		return []byte(s)
	}
	return []byte(defaultSecret)
}

// GenerateToken creates a signed HS256 token for subject with a fresh jti.
func GenerateToken(subject, role string, duration time.Duration) (string, *Claims, error) {
	now := time.Now()
	claims := &Claims{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			Subject:   subject,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secretKey())
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns its claims.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" || claims.Id == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Expiry converts the numeric exp claim back to a time.
func (c *Claims) Expiry() time.Time {
	return time.Unix(c.ExpiresAt, 0)
}
