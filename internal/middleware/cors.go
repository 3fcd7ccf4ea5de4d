package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS allows the configured browser origins to call the API with credentials.
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return OriginAllowed(origins, origin)
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}

// OriginAllowed matches origin against exact entries, "." suffix entries
// (".vercel.app") and the "*" wildcard.
func OriginAllowed(origins []string, origin string) bool {
	if origin == "" {
		return true
	}
	origin = strings.TrimSuffix(origin, "/")
	for _, o := range origins {
		switch {
		case o == "*":
			return true
		case strings.HasPrefix(o, "."):
			if strings.HasSuffix(origin, o) {
				return true
			}
		case strings.TrimSuffix(o, "/") == origin:
			return true
		}
	}
	return false
}
