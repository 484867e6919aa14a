package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/imeelinew/paper-library/internal/entities"
)

var (
	ErrMissingSecret = errors.New("jwt secret is not configured")
	ErrInvalidToken  = errors.New("invalid or expired token")
)

// IssueToken signs an HS256 token carrying the identity's id, username and
// role.
func IssueToken(secret string, identity Identity, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	claims := jwt.MapClaims{
		"id":       identity.ID,
		"username": identity.Username,
		"role":     string(identity.Role),
		"exp":      time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies a signed token and reconstructs the Identity it
// carries. Any verification failure comes back as ErrInvalidToken.
func ParseToken(secret, tokenStr string) (Identity, error) {
	if secret == "" {
		return Identity{}, ErrMissingSecret
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)

	return Identity{
		ID:       uint(id),
		Username: username,
		Role:     entities.UserRole(role),
	}, nil
}
