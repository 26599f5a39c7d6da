package lib

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionToken(t *testing.T) {
	a, err := NewSessionToken()
	require.NoError(t, err)
	b, err := NewSessionToken()
	require.NoError(t, err)

	assert.Len(t, a, 64) // 32 bytes hex encoded
	assert.NotEqual(t, a, b)
}

func TestGetSessionTokenMissingCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "/cart", nil)
	assert.Empty(t, GetSessionToken(r))
}

func TestSessionCookieRoundTrip(t *testing.T) {
	token, err := NewSessionToken()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	SetSessionCookie(token, w)

	r := httptest.NewRequest("GET", "/cart", nil)
	for _, cookie := range w.Result().Cookies() {
		r.AddCookie(cookie)
	}

	assert.Equal(t, token, GetSessionToken(r))
}
