package authapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lamnguyen-ct/storefront/internal/config"
	"github.com/lamnguyen-ct/storefront/internal/models"
)

func newTestClient(url string) Client {
	cfg := &config.Config{}
	cfg.Auth.BaseURL = url
	cfg.Auth.APIKey = "anon-key"
	return NewClient(cfg)
}

func TestSignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-1","token_type":"bearer","expires_in":3600,"user":{"id":"u1","email":"a@b.c"}}`))
	}))
	defer srv.Close()

	session, err := newTestClient(srv.URL).SignIn(context.Background(), Credentials{Email: "a@b.c", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", session.AccessToken)
	assert.Equal(t, "a@b.c", session.User.Email)
}

func TestSignInBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SignIn(context.Background(), Credentials{Email: "a@b.c", Password: "nope"})
	require.Error(t, err)
	assert.Equal(t, "Invalid login credentials", err.Error())
}

func TestGetUserInvalidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetUser(context.Background(), "stale-token")
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestSignUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u2","email":"new@b.c"}`))
	}))
	defer srv.Close()

	user, err := newTestClient(srv.URL).SignUp(context.Background(), Credentials{Email: "new@b.c", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "u2", user.ID)
}
