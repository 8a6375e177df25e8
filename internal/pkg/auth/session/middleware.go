package session

import (
	"context"
	"net/http"

	"roomhub/internal/pkg/logx"
)

// contextKey is private to this package so no other package can collide
// with the session entry in a request context.
type contextKey string

const contextClaimsKey contextKey = "session_claims"

// Extractor reads the session cookie, validates the token and injects
// the claims into the request context. It never interrupts the request:
// a missing or invalid cookie just means an anonymous visitor.
func Extractor(secretKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := ParseToken(cookie.Value, secretKey)
			if err != nil {
				// Expired or tampered cookie. Drop it and continue anonymous.
				logx.Warn("invalid session cookie, treating as anonymous", "error", err)
				ClearCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), contextClaimsKey, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth gates a route behind a valid session. Anonymous requests
// are redirected to the login page.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if FromRequest(r) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// FromRequest returns the authenticated session claims, or nil for an
// anonymous visitor.
func FromRequest(r *http.Request) *Claims {
	claims, ok := r.Context().Value(contextClaimsKey).(*Claims)
	if !ok {
		return nil
	}

	return claims
}
