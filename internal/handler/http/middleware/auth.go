package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/planillapro/planilla-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests without a valid access token.
// It must run after jwtauth.Verifier.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.Unauthorized(w, "Invalid or missing token")
				return
			}

			if tokenType, ok := claims["type"].(string); !ok || tokenType != "access" {
				response.Unauthorized(w, "Invalid token type")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
