package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestState_RoundTrip(t *testing.T) {
	svc := NewGoogleService("id", "secret", "http://localhost/callback", []string{"email"}, "key")

	state, err := svc.GenerateState("Mozilla/5.0")
	require.NoError(t, err)

	assert.True(t, svc.VerifyState(state, "Mozilla/5.0"))
	assert.False(t, svc.VerifyState(state, "curl/8.0"))
	assert.False(t, svc.VerifyState("garbage", "Mozilla/5.0"))
	assert.Contains(t, svc.RedirectURL(state), "state="+state)
}

func TestVerifyUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "Bearer "))
		_, _ = w.Write([]byte(`{"id":"g-1","email":"jane@example.com","verified_email":true}`))
	}))
	defer srv.Close()

	svc := NewGoogleService("id", "secret", "", nil, "key").(*GoogleServiceImpl)
	svc.userInfoURL = srv.URL

	info, err := svc.VerifyUser(context.Background(), &oauth2.Token{AccessToken: "tok", TokenType: "Bearer"})
	require.NoError(t, err)
	assert.Equal(t, "g-1", info.GoogleID)
	assert.Equal(t, "jane@example.com", info.Email)
}

func TestVerifyUser_Unverified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"g-1","email":"jane@example.com","verified_email":false}`))
	}))
	defer srv.Close()

	svc := NewGoogleService("id", "secret", "", nil, "key").(*GoogleServiceImpl)
	svc.userInfoURL = srv.URL

	_, err := svc.VerifyUser(context.Background(), &oauth2.Token{AccessToken: "tok"})
	assert.ErrorIs(t, err, ErrEmailNotVerified)
}
