package middleware

import (
	"net/http"
	"strings"

	"promptdeck/internal/auth"
	"promptdeck/internal/httputil"
)

// AuthMiddleware verifies the Bearer token on every /api request and stores
// the authenticated user ID in the request context. Non-API paths (health
// check) pass through untouched.
func AuthMiddleware(verifier auth.JWTVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "AUTH_REQUIRED",
					"Unauthorized", "Sign in and try again.")
				return
			}

			claims, err := verifier.VerifyToken(strings.TrimSpace(token))
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "AUTH_REQUIRED",
					"Unauthorized", "Sign in and try again.")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}
