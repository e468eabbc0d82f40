package authorization_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"stayvista_service/authorization"
	"stayvista_service/domain"
)

func TestGenerateAndVerifyToken(t *testing.T) {
	key := []byte("test-secret")

	t.Run("round trips the identity claim", func(t *testing.T) {
		token, err := authorization.GenerateToken(key, &domain.Claims{
			Email: "guest@example.com",
			Name:  "Guest",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := authorization.VerifyToken(key, token)
		require.NoError(t, err)
		assert.Equal(t, "guest@example.com", claims.Email)
		assert.Equal(t, "Guest", claims.Name)
	})

	t.Run("defaults to a long validity window", func(t *testing.T) {
		token, err := authorization.GenerateToken(key, &domain.Claims{Email: "guest@example.com"})
		require.NoError(t, err)

		claims, err := authorization.VerifyToken(key, token)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(authorization.TokenValidity), claims.ExpiresAt, time.Minute)
	})

	t.Run("rejects a claim without email", func(t *testing.T) {
		_, err := authorization.GenerateToken(key, &domain.Claims{Name: "nobody"})
		assert.Error(t, err)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		token, err := authorization.GenerateToken(key, &domain.Claims{
			Email:     "guest@example.com",
			ExpiresAt: time.Now().Add(-time.Hour),
		})
		require.NoError(t, err)

		_, err = authorization.VerifyToken(key, token)
		assert.Error(t, err)
	})

	t.Run("rejects a tampered token", func(t *testing.T) {
		token, err := authorization.GenerateToken(key, &domain.Claims{Email: "guest@example.com"})
		require.NoError(t, err)

		_, err = authorization.VerifyToken(key, token+"tampered")
		assert.Error(t, err)
	})

	t.Run("rejects a token signed with another key", func(t *testing.T) {
		token, err := authorization.GenerateToken([]byte("other-secret"), &domain.Claims{Email: "guest@example.com"})
		require.NoError(t, err)

		_, err = authorization.VerifyToken(key, token)
		assert.Error(t, err)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := authorization.VerifyToken(key, "not-a-token")
		assert.Error(t, err)
	})
}

func TestSessionCookie(t *testing.T) {
	t.Run("development cookie is strict and not secure", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		authorization.SetSessionCookie(recorder, "sometoken", false)

		cookies := recorder.Result().Cookies()
		require.Len(t, cookies, 1)
		cookie := cookies[0]
		assert.Equal(t, authorization.CookieName, cookie.Name)
		assert.Equal(t, "sometoken", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.False(t, cookie.Secure)
	})

	t.Run("production cookie is secure and cross-site", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		authorization.SetSessionCookie(recorder, "sometoken", true)

		cookies := recorder.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.True(t, cookies[0].Secure)
	})

	t.Run("clear expires the cookie", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		authorization.ClearSessionCookie(recorder, false)

		cookies := recorder.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)
	})
}
