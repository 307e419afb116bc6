package jwtutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims identify the caller of a mutating request. Scope is free text
// ("authors:write"); an empty scope grants everything.
type AccessClaims struct {
	Scope string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

func NewAccessClaims(subject, jti, scope string, now time.Time, ttl time.Duration) AccessClaims {
	return AccessClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}
