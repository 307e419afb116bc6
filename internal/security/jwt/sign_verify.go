package jwtutil

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/5w1tchy/course-library-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// Signer signs and verifies HS256 access tokens with one shared secret.
type Signer struct {
	Secret    []byte
	ClockSkew time.Duration
	Now       func() time.Time
}

func NewSigner(cfg config.Config) *Signer {
	return &Signer{Secret: []byte(cfg.JWTSecret), ClockSkew: cfg.ClockSkew}
}

func (s *Signer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Sign returns (tokenString, jti).
func (s *Signer) Sign(subject, scope string, ttl time.Duration) (string, string, error) {
	if len(s.Secret) == 0 {
		return "", "", errors.New("jwt: no signing secret configured")
	}
	jti, err := randJTI()
	if err != nil {
		return "", "", err
	}
	claims := NewAccessClaims(subject, jti, scope, s.now(), ttl)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	str, err := t.SignedString(s.Secret)
	return str, jti, err
}

// Parse verifies HS256 signature and leeway, returning claims.
func (s *Signer) Parse(tokenStr string) (*AccessClaims, error) {
	parser := jwt.NewParser(
		jwt.WithLeeway(s.ClockSkew),
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.ParseWithClaims(tokenStr, &AccessClaims{}, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func randJTI() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
