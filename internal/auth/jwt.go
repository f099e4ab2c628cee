// Package auth issues and verifies the JWTs that protect the HTTP surface,
// and wraps password hashing.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that fails parsing, signature
// verification, or claim extraction.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the authenticated principal carried inside a token.
type Identity struct {
	UserID   string
	Username string
	Role     string
}

// NewToken builds and signs an HS256 JWT for the identity. The same helper
// signs access and refresh tokens; only the secret and TTL differ.
func NewToken(secret string, id Identity, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":      id.UserID,
		"username": id.Username,
		"role":     id.Role,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken verifies the signature and expiry of a token and returns the
// embedded identity.
func ParseToken(secret, raw string) (Identity, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	id := Identity{}
	if id.UserID, ok = claims["sub"].(string); !ok || id.UserID == "" {
		return Identity{}, ErrInvalidToken
	}
	if id.Role, ok = claims["role"].(string); !ok || id.Role == "" {
		return Identity{}, ErrInvalidToken
	}
	// username is informational; older tokens may not carry it.
	id.Username, _ = claims["username"].(string)
	return id, nil
}
