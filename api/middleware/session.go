package middleware

import (
	"context"
	"net/http"

	"solemate_server/lib"

	"github.com/MonkyMars/gecho"
)

type contextKey string

const sessionTokenKey contextKey = "cart_session_token"

// EnsureSession guarantees the routes it wraps carry a cart session token.
// A request without the cookie gets a fresh token minted and set on the
// response, so the first cart interaction already lands in a stable
// session. It is mounted on the cart and checkout routes only; plain
// catalog reads never mint the cookie.
func (mw *Middleware) EnsureSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := lib.GetSessionToken(r)
			if token == "" {
				fresh, err := lib.NewSessionToken()
				if err != nil {
					mw.logger.Error("Failed to mint session token", gecho.Field("error", err))
					gecho.InternalServerError(w, gecho.Send())
					return
				}
				token = fresh
				lib.SetSessionCookie(token, w)
			}

			ctx := context.WithValue(r.Context(), sessionTokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionToken returns the cart session token placed on the request context
// by EnsureSession. Empty means the middleware did not run.
func SessionToken(r *http.Request) string {
	token, _ := r.Context().Value(sessionTokenKey).(string)
	return token
}
