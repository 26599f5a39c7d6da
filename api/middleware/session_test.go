package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"solemate_server/lib"
	"solemate_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionTestHandler(captured *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = SessionToken(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestEnsureSessionMintsCookieWhenAbsent(t *testing.T) {
	mw := NewMiddleware(&structs.Config{}, gecho.NewDefaultLogger())

	var captured string
	handler := mw.EnsureSession()(sessionTestHandler(&captured))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/cart", nil))

	require.NotEmpty(t, captured)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, lib.SessionCookieName, cookies[0].Name)
	assert.Equal(t, captured, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestEnsureSessionKeepsExistingToken(t *testing.T) {
	mw := NewMiddleware(&structs.Config{}, gecho.NewDefaultLogger())

	token, err := lib.NewSessionToken()
	require.NoError(t, err)

	var captured string
	handler := mw.EnsureSession()(sessionTestHandler(&captured))

	r := httptest.NewRequest("GET", "/cart", nil)
	r.AddCookie(&http.Cookie{Name: lib.SessionCookieName, Value: token})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, token, captured)
	assert.Empty(t, w.Result().Cookies())
}

func TestSessionTokenWithoutMiddleware(t *testing.T) {
	r := httptest.NewRequest("GET", "/cart", nil)
	assert.Empty(t, SessionToken(r))
}
