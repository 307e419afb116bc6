package middlewares

import (
	"net/http"
	"strings"
)

// RequireScope lets a request through when its token carries scope. Tokens
// without any scope are unrestricted. Must run after RequireAuth; requests
// with no authenticated subject pass untouched (auth disabled).
func RequireScope(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := SubjectFrom(r.Context()); !ok {
				next.ServeHTTP(w, r)
				return
			}
			have := ScopeFrom(r.Context())
			if have != "" && !hasScope(have, scope) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func hasScope(have, want string) bool {
	for _, s := range strings.Fields(have) {
		if s == want {
			return true
		}
	}
	return false
}
