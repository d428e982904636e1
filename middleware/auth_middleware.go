package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"flowsync_server/auth"
)

type contextKey string

// SubjectKey holds the token subject in the request context.
const SubjectKey contextKey = "subject"

// TokenValidator checks a bearer token.
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// JWTMiddleware rejects requests without a valid bearer token. The token
// subject is stored in the request context under SubjectKey.
func JWTMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Printf("JWTMiddleware: missing Authorization header for %s %s", r.Method, r.URL.Path)
				unauthorized(w, "missing Authorization header")
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				log.Printf("JWTMiddleware: malformed Authorization header for %s %s", r.Method, r.URL.Path)
				unauthorized(w, "Authorization header must be Bearer {token}")
				return
			}

			claims, err := validator.ValidateToken(parts[1])
			if err != nil {
				log.Printf("JWTMiddleware: invalid token for %s %s: %v", r.Method, r.URL.Path, err)
				unauthorized(w, "invalid token: "+err.Error())
				return
			}

			ctx := context.WithValue(r.Context(), SubjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFrom returns the authenticated subject, if any.
func SubjectFrom(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(SubjectKey).(string)
	return s, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="flowsync"`)
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
