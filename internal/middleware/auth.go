package middleware

import (
	"context"
	"net/http"

	"github.com/studiomart/orderpay/internal/service"
)

type contextKey int

const (
	// contextKeyAuthPayload keys the verified token payload in the request context
	contextKeyAuthPayload contextKey = iota
)

// Auth gets the token from the cookie and passes its payload to the context
func Auth(ts service.TokenService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("auth_token")
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			payload, err := ts.VerifyToken(cookie.Value)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyAuthPayload, payload)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
