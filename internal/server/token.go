package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"promptbench/internal/errs"
)

const tokenIssuer = "promptbench"

// JWTTokenGen mints HS256 tokens whose subject is the user id.
type JWTTokenGen struct {
	key     string
	issuer  string
	nowFunc func() time.Time
}

func NewJWTTokenGen(key string) *JWTTokenGen {
	return &JWTTokenGen{key: key, issuer: tokenIssuer, nowFunc: time.Now}
}

func (t *JWTTokenGen) GenerateToken(subject string, expire time.Duration) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", errors.New("subject is required")
	}
	now := t.nowFunc()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    t.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
		Subject:   subject,
	})
	return token.SignedString([]byte(t.key))
}

// VerifyToken returns the subject of a valid token.
func VerifyToken(key, raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(key), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %w", errs.ErrUnauthorized, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", errs.ErrUnauthorized)
	}
	return claims.Subject, nil
}
