package transport

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moducare/config"
	domainerrors "moducare/internal/domain/errors"
	"moducare/internal/domain/repository"
	"moducare/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, service.HeaderRegistry) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.API.BaseURL = server.URL
	cfg.API.Timeout = 5 * time.Second

	registry := NewHeaderRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewClient(cfg, registry, logger), registry
}

func TestAuthAPI_Login_Success(t *testing.T) {
	var gotBody repository.LoginCredentials
	mux := http.NewServeMux()
	mux.HandleFunc("POST /members/login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"jwtAccessToken": "access-1",
			"refreshToken":   "refresh-1",
			"name":           "홍길동",
			"birth":          "1990-01-01",
			"email":          "hong@example.com",
		})
	})

	client, _ := newTestClient(t, mux)
	api := NewAuthAPI(client)

	result, err := api.Login(context.Background(), repository.LoginCredentials{Provider: "naver", Token: "provider-token"})

	require.NoError(t, err)
	assert.Equal(t, "access-1", result.AccessToken)
	assert.Equal(t, "refresh-1", result.RefreshToken)
	assert.Equal(t, "naver", gotBody.Provider)
	assert.Equal(t, "홍길동", result.Profile().Name)
}

func TestAuthAPI_Login_RejectedCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /members/login", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, _ := newTestClient(t, mux)
	api := NewAuthAPI(client)

	_, err := api.Login(context.Background(), repository.LoginCredentials{Provider: "naver", Token: "bad"})

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_CREDENTIALS", appErr.ErrorCode())
}

func TestAuthAPI_Login_ServerFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /members/login", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	client, _ := newTestClient(t, mux)
	api := NewAuthAPI(client)

	_, err := api.Login(context.Background(), repository.LoginCredentials{Provider: "naver", Token: "token"})

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "AUTH_NETWORK_FAILURE", appErr.ErrorCode())
}

func TestAuthAPI_Refresh_OverridesAuthorizationHeader(t *testing.T) {
	var gotAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /members/refresh", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get(service.HeaderAuthorization)
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": "access-2"})
	})

	client, registry := newTestClient(t, mux)
	registry.SetHeader(service.HeaderAuthorization, "Bearer stale-access")
	api := NewAuthAPI(client)

	accessToken, err := api.Refresh(context.Background(), "refresh-1")

	require.NoError(t, err)
	assert.Equal(t, "access-2", accessToken)
	assert.Equal(t, "Bearer refresh-1", gotAuth)
}

func TestAuthAPI_Refresh_Expired(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /members/refresh", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, _ := newTestClient(t, mux)
	api := NewAuthAPI(client)

	_, err := api.Refresh(context.Background(), "refresh-dead")

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "REFRESH_EXPIRED", appErr.ErrorCode())
}

func TestAuthAPI_LogoutAndDelete(t *testing.T) {
	var logoutCalled, deleteCalled bool
	mux := http.NewServeMux()
	mux.HandleFunc("POST /members/logout", func(w http.ResponseWriter, _ *http.Request) {
		logoutCalled = true
	})
	mux.HandleFunc("DELETE /members", func(w http.ResponseWriter, _ *http.Request) {
		deleteCalled = true
	})

	client, _ := newTestClient(t, mux)
	api := NewAuthAPI(client)

	require.NoError(t, api.Logout(context.Background()))
	require.NoError(t, api.DeleteMember(context.Background()))
	assert.True(t, logoutCalled)
	assert.True(t, deleteCalled)
}
