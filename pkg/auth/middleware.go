package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// AccessTokenCookieName is the cookie checked when no Authorization header
// is present.
const AccessTokenCookieName = "access_token"

// Verifier returns a middleware that authenticates requests with jwtService
// and stores the parsed token in the request context under the "jwt" key,
// where handlers read the caller's claims. Requests without a valid token
// get 401.
func Verifier(jwtService *Jwt) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := tokenFromRequest(r)
			if tokenStr == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			token, err := jwtService.ParseTokenStr(tokenStr)
			if err != nil {
				slog.Debug("Rejected request with invalid token", "err", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), "jwt", token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenFromRequest finds the access token in the Authorization header or,
// failing that, the access token cookie.
func tokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	cookie, err := r.Cookie(AccessTokenCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}
