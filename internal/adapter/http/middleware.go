package adapthttp

import (
	"context"
	"net/http"
	"strings"

	"bodycomp/internal/token"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// requireAuth validates the Authorization bearer token and stores its claims
// in the request context. A missing token is 401, an invalid or expired one
// is 403; the response does not say which check failed.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			writeMessage(w, http.StatusUnauthorized, "no token provided")
			return
		}

		claims, err := s.tokens.Verify(raw)
		if err != nil {
			writeMessage(w, http.StatusForbidden, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, tok, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(tok)
}

func claimsFrom(r *http.Request) *token.Claims {
	claims, _ := r.Context().Value(claimsContextKey).(*token.Claims)
	return claims
}
