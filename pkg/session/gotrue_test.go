package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tanmald/plate-check-mvp/domain"
	"github.com/tanmald/plate-check-mvp/internal/utils/localstore"
	"github.com/tanmald/plate-check-mvp/pkg/jwt"
)

const testSecret = "gotrue-test-secret"

func tokenBody(t *testing.T, email string) map[string]any {
	t.Helper()
	token, err := jwt.NewJWTService(testSecret, "test").GenerateAccessToken("5d7e0f3a", email, time.Hour)
	require.NoError(t, err)
	return map[string]any{
		"access_token":  token,
		"token_type":    "bearer",
		"expires_in":    3600,
		"refresh_token": "refresh-1",
		"user": map[string]any{
			"id":            "5d7e0f3a",
			"email":         email,
			"aud":           "authenticated",
			"role":          "authenticated",
			"user_metadata": map[string]any{"full_name": "Sarah"},
		},
	}
}

func newTestGoTrue(t *testing.T, handler http.HandlerFunc) (*goTrueClient, localstore.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := localstore.NewMemory()
	backend := NewGoTrueClient(GoTrueConfig{URL: srv.URL, AnonKey: "anon"}, store, jwt.NewJWTService(testSecret, "test"), zaptest.NewLogger(t))
	client := backend.(*goTrueClient)
	t.Cleanup(client.Close)
	return client, store
}

func TestGoTrue_SignIn(t *testing.T) {
	client, store := newTestGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon", r.Header.Get("apikey"))

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "sarah@example.com", body["email"])

		_ = json.NewEncoder(w).Encode(tokenBody(t, "sarah@example.com"))
	})

	var events []domain.AuthEvent
	client.Subscribe(func(e domain.AuthEvent, _ *domain.Session) { events = append(events, e) })

	s, err := client.SignIn(context.Background(), "sarah@example.com", "Secret123")

	require.NoError(t, err)
	assert.Equal(t, "5d7e0f3a", s.User.ID)
	assert.Equal(t, "Sarah", s.User.DisplayName)
	assert.Equal(t, domain.IdentityReal, s.User.Kind)
	assert.Equal(t, []domain.AuthEvent{domain.AuthEventSignedIn}, events)

	_, persisted := store.Get(StorageKey)
	assert.True(t, persisted)
}

func TestGoTrue_SignInRejected(t *testing.T) {
	client, _ := newTestGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	})

	_, err := client.SignIn(context.Background(), "sarah@example.com", "nope")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusBadRequest, authErr.Status)
	assert.Equal(t, "Invalid login credentials", err.Error())
}

func TestGoTrue_SignUpAwaitingConfirmation(t *testing.T) {
	client, _ := newTestGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		assert.Equal(t, "http://localhost:3000/auth/callback", r.URL.Query().Get("redirect_to"))
		_, _ = w.Write([]byte(`{"id":"5d7e0f3a","email":"sarah@example.com"}`))
	})

	s, err := client.SignUp(context.Background(), "sarah@example.com", "Secret123", "http://localhost:3000/auth/callback")

	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestGoTrue_GetSessionRefreshesExpired(t *testing.T) {
	client, store := newTestGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "refresh_token", r.URL.Query().Get("grant_type"))
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "old-refresh", body["refresh_token"])
		_ = json.NewEncoder(w).Encode(tokenBody(t, "sarah@example.com"))
	})
	stale, _ := json.Marshal(domain.Session{AccessToken: "old", RefreshToken: "old-refresh", ExpiresAt: time.Now().Add(-time.Hour).Unix()})
	require.NoError(t, store.Set(StorageKey, string(stale)))

	var events []domain.AuthEvent
	client.Subscribe(func(e domain.AuthEvent, _ *domain.Session) { events = append(events, e) })

	s, err := client.GetSession(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "refresh-1", s.RefreshToken)
	assert.Equal(t, []domain.AuthEvent{domain.AuthEventTokenRefreshed}, events)
}

func TestGoTrue_GetSessionRefreshRejectedClears(t *testing.T) {
	client, store := newTestGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"msg":"Invalid Refresh Token"}`))
	})
	stale, _ := json.Marshal(domain.Session{AccessToken: "old", RefreshToken: "old-refresh", ExpiresAt: 1})
	require.NoError(t, store.Set(StorageKey, string(stale)))

	s, err := client.GetSession(context.Background())

	assert.Nil(t, s)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	_, ok := store.Get(StorageKey)
	assert.False(t, ok)
}

func TestGoTrue_SignOut(t *testing.T) {
	var sawBearer string
	client, store := newTestGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/v1/token":
			_ = json.NewEncoder(w).Encode(tokenBody(t, "sarah@example.com"))
		case "/auth/v1/logout":
			sawBearer = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusNoContent)
		}
	})
	s, err := client.SignIn(context.Background(), "sarah@example.com", "Secret123")
	require.NoError(t, err)

	require.NoError(t, client.SignOut(context.Background()))

	assert.Equal(t, "Bearer "+s.AccessToken, sawBearer)
	_, ok := store.Get(StorageKey)
	assert.False(t, ok)
}

func TestGoTrue_SignOutFailureKeepsSession(t *testing.T) {
	client, store := newTestGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/v1/logout" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(tokenBody(t, "sarah@example.com"))
	})
	_, err := client.SignIn(context.Background(), "sarah@example.com", "Secret123")
	require.NoError(t, err)

	assert.Error(t, client.SignOut(context.Background()))
	_, ok := store.Get(StorageKey)
	assert.True(t, ok)
}

func TestGoTrue_ResetPassword(t *testing.T) {
	client, _ := newTestGoTrue(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/recover", r.URL.Path)
		assert.Equal(t, "http://localhost:3000/auth/reset-password", r.URL.Query().Get("redirect_to"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	})

	assert.NoError(t, client.ResetPassword(context.Background(), "sarah@example.com", "http://localhost:3000/auth/reset-password"))
}

func TestNewGoTrueClient_NotConfigured(t *testing.T) {
	backend := NewGoTrueClient(GoTrueConfig{}, localstore.NewMemory(), jwt.NewJWTService("", ""), zaptest.NewLogger(t))

	_, err := backend.SignIn(context.Background(), "sarah@example.com", "x")
	assert.ErrorIs(t, err, domain.ErrAuthNotConfigured)

	s, err := backend.GetSession(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, s)
}
