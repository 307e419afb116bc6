package middlewares

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows the configured browser origins. OPTIONS requests that are not
// preflights fall through to the API, which answers them with an Allow header.
func Cors(origins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           3600,
		ExposedHeaders: []string{
			"Location", "X-Pagination", "X-Request-ID",
			"X-RateLimit-Policy", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After", "X-Response-Time",
		},
	})
	return c.Handler
}
