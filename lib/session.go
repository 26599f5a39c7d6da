package lib

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"solemate_server/config"
	"time"
)

// SessionCookieName carries the opaque cart session token. The token only
// keys the session's cart tree; it proves nothing about identity.
const SessionCookieName = "cart_session"

const sessionTokenBytes = 32

// NewSessionToken generates an opaque session token.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// SetSessionCookie persists the session token on the browser.
func SetSessionCookie(token string, w http.ResponseWriter) {
	isProduction := config.IsProduction()

	sameSite := http.SameSiteLaxMode
	secure := false

	if isProduction {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		Path:     "/",
		Secure:   secure,
		SameSite: sameSite,
		HttpOnly: true,
	})
}

// GetSessionToken reads the session token from the request. An absent or
// empty cookie returns ""; that is "no cart yet", not an error.
func GetSessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
