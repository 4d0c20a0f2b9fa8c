package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dogukancykrn/ziyaretci-takip-api/internal/token"
)

// TokenVerifier validates a bearer token and returns its claims.
// Satisfied by *token.Manager; defined here so handler tests can inject a
// stub verifier.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// claimsKey is the context key under which verified claims are stored.
type claimsKey struct{}

// AdminClaims retrieves the authenticated admin's claims from the context.
// Returns nil when the request did not pass through RequireAuth.
func AdminClaims(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*token.Claims)
	return claims
}

// RequireAuth returns a middleware that rejects requests without a valid
// Bearer token. Verified claims are stored on the request context for
// handlers to read via AdminClaims.
func RequireAuth(verifier TokenVerifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				unauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := verifier.Verify(raw)
			if err != nil {
				log.WarnContext(r.Context(), "rejected token", "error", err)
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// unauthorized writes a 401 in the standard response envelope.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"success":false,"message":"` + message + `","data":null}`))
}
