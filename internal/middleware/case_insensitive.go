package middleware

import (
	"net/http"
	"strings"
)

// CaseInsensitiveMiddleware lowercases URL paths so /Leads and /leads hit the
// same page. Paths under any of the keep prefixes are left untouched, since
// asset names are case sensitive.
func CaseInsensitiveMiddleware(keep ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lower := strings.ToLower(r.URL.Path)
			for _, prefix := range keep {
				if strings.HasPrefix(lower, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}
			r.URL.Path = lower
			next.ServeHTTP(w, r)
		})
	}
}
