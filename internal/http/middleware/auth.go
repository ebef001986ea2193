package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// APIKeyHeader carries the shared-secret key on authenticated endpoints.
const APIKeyHeader = "Authorization-Header"

// APIKeyMiddleware rejects requests whose key header does not match the
// configured secret.
func APIKeyMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(APIKeyHeader)
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "WRONG API KEY - not authorized"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
