package middlewares

import (
	"errors"
	"net/http"
	"strings"

	jwtutil "github.com/5w1tchy/course-library-api/internal/security/jwt"
)

// TokenParser verifies a raw bearer token.
type TokenParser interface {
	Parse(token string) (*jwtutil.AccessClaims, error)
}

// RequireAuth verifies a Bearer JWT and injects the subject and scope into the
// context. A nil parser disables the check (auth not configured).
func RequireAuth(p TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" {
				unauthorized(w, "missing Authorization header")
				return
			}
			tokenStr, err := bearer(raw)
			if err != nil {
				unauthorized(w, "invalid Authorization header")
				return
			}
			claims, err := p.Parse(tokenStr)
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}
			ctx := WithSubject(r.Context(), claims.Subject, claims.Scope)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="course-library"`)
	http.Error(w, msg, http.StatusUnauthorized)
}

func bearer(h string) (string, error) {
	if len(h) < len("Bearer ") || !strings.EqualFold(h[:len("Bearer ")], "Bearer ") {
		return "", errors.New("no bearer")
	}
	tok := strings.TrimSpace(h[len("Bearer "):])
	if tok == "" {
		return "", errors.New("empty bearer")
	}
	return tok, nil
}
