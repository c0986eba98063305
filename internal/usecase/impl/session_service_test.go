package impl

import (
	"context"
	"testing"

	"moducare/internal/domain/entity"
	domainerrors "moducare/internal/domain/errors"
	"moducare/internal/domain/repository"
	"moducare/internal/domain/service"
	"moducare/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newSessionFixture(t *testing.T, authAPI *fakeAuthAPI) (usecase.SessionUsecase, *fakeStore, *fakeRegistry, *recordingCache) {
	t.Helper()

	store := newFakeStore()
	registry := newFakeRegistry()
	cache := newRecordingCache()

	svc := NewSessionService(SessionServiceParams{
		Lifecycle: fxtest.NewLifecycle(t),
		AuthAPI:   authAPI,
		Store:     store,
		Registry:  registry,
		Cache:     cache,
		Config:    newTestConfig(),
		Logger:    newDiscardLogger(),
	})

	return svc, store, registry, cache
}

func TestSessionService_Login_Success(t *testing.T) {
	authAPI := &fakeAuthAPI{
		loginResult: &repository.LoginResult{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			Name:         "홍길동",
			Birth:        "1990-01-01",
			Email:        "hong@example.com",
		},
	}
	svc, store, registry, _ := newSessionFixture(t, authAPI)

	session, err := svc.Login(context.Background(), &usecase.LoginInput{Provider: "naver", Token: "provider-token"})

	require.NoError(t, err)
	assert.Equal(t, entity.SessionAuthenticated, session.Status)
	assert.True(t, session.Authenticated())
	assert.Equal(t, "Bearer access-1", registry.header(service.HeaderAuthorization))
	assert.True(t, store.has(service.StoreKeyRefreshToken))
	assert.True(t, store.has(service.StoreKeyProfile))

	profile, err := svc.Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "홍길동", profile.Name)
	assert.Equal(t, "1990-01-01", profile.BirthDate)
}

func TestSessionService_Login_InvalidCredentials(t *testing.T) {
	authAPI := &fakeAuthAPI{loginErr: domainerrors.ErrInvalidCredentials}
	svc, store, registry, _ := newSessionFixture(t, authAPI)

	_, err := svc.Login(context.Background(), &usecase.LoginInput{Provider: "naver", Token: "bad"})

	require.Error(t, err)
	assert.Equal(t, entity.SessionUnauthenticated, svc.Status())
	assert.Empty(t, registry.header(service.HeaderAuthorization))
	assert.False(t, store.has(service.StoreKeyRefreshToken))
}

func TestSessionService_Logout_ClearsLocalStateEvenWhenServerFails(t *testing.T) {
	authAPI := &fakeAuthAPI{
		loginResult: &repository.LoginResult{AccessToken: "access-1", RefreshToken: "refresh-1"},
		logoutErr:   domainerrors.ErrAuthNetworkFailure,
	}
	svc, store, registry, _ := newSessionFixture(t, authAPI)

	_, err := svc.Login(context.Background(), &usecase.LoginInput{Provider: "naver", Token: "provider-token"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))

	assert.Equal(t, entity.SessionUnauthenticated, svc.Status())
	assert.Empty(t, registry.header(service.HeaderAuthorization))
	assert.False(t, store.has(service.StoreKeyRefreshToken))
	assert.False(t, store.has(service.StoreKeyProfile))
}

func TestSessionService_DeleteAccount_TearsDown(t *testing.T) {
	authAPI := &fakeAuthAPI{
		loginResult: &repository.LoginResult{AccessToken: "access-1", RefreshToken: "refresh-1"},
	}
	svc, store, registry, _ := newSessionFixture(t, authAPI)

	_, err := svc.Login(context.Background(), &usecase.LoginInput{Provider: "naver", Token: "provider-token"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteAccount(context.Background()))

	assert.Equal(t, entity.SessionUnauthenticated, svc.Status())
	assert.Empty(t, registry.header(service.HeaderAuthorization))
	assert.False(t, store.has(service.StoreKeyProfile))
}

func TestSessionService_ScheduledRefresh_Success(t *testing.T) {
	authAPI := &fakeAuthAPI{
		loginResult:        &repository.LoginResult{AccessToken: "access-1", RefreshToken: "refresh-1"},
		refreshAccessToken: "access-2",
	}
	svc, _, registry, _ := newSessionFixture(t, authAPI)

	_, err := svc.Login(context.Background(), &usecase.LoginInput{Provider: "naver", Token: "provider-token"})
	require.NoError(t, err)

	inner := svc.(*sessionService)
	inner.mu.Lock()
	generation := inner.generation
	inner.mu.Unlock()

	inner.scheduledRefresh(generation)

	assert.Equal(t, entity.SessionAuthenticated, svc.Status())
	assert.Equal(t, "Bearer access-2", registry.header(service.HeaderAuthorization))
	assert.Equal(t, "refresh-1", authAPI.lastRefreshToken)
}

func TestSessionService_ScheduledRefresh_FailureExpiresSession(t *testing.T) {
	authAPI := &fakeAuthAPI{
		loginResult: &repository.LoginResult{AccessToken: "access-1", RefreshToken: "refresh-1"},
		refreshErr:  domainerrors.ErrRefreshExpired,
	}
	svc, store, registry, _ := newSessionFixture(t, authAPI)

	_, err := svc.Login(context.Background(), &usecase.LoginInput{Provider: "naver", Token: "provider-token"})
	require.NoError(t, err)

	inner := svc.(*sessionService)
	inner.mu.Lock()
	generation := inner.generation
	inner.mu.Unlock()

	inner.scheduledRefresh(generation)

	assert.Equal(t, entity.SessionExpired, svc.Status())
	assert.Empty(t, registry.header(service.HeaderAuthorization))
	assert.False(t, store.has(service.StoreKeyRefreshToken))
}

func TestSessionService_ScheduledRefresh_StaleGenerationDiscarded(t *testing.T) {
	authAPI := &fakeAuthAPI{
		loginResult:        &repository.LoginResult{AccessToken: "access-1", RefreshToken: "refresh-1"},
		refreshAccessToken: "stale-access",
	}
	svc, _, registry, _ := newSessionFixture(t, authAPI)

	_, err := svc.Login(context.Background(), &usecase.LoginInput{Provider: "naver", Token: "provider-token"})
	require.NoError(t, err)

	inner := svc.(*sessionService)
	inner.mu.Lock()
	staleGeneration := inner.generation
	inner.mu.Unlock()

	// A second login supersedes the scheduled tick armed by the first.
	authAPI.mu.Lock()
	authAPI.loginResult = &repository.LoginResult{AccessToken: "access-2", RefreshToken: "refresh-2"}
	authAPI.mu.Unlock()
	_, err = svc.Login(context.Background(), &usecase.LoginInput{Provider: "naver", Token: "provider-token"})
	require.NoError(t, err)

	inner.scheduledRefresh(staleGeneration)

	assert.Equal(t, "Bearer access-2", registry.header(service.HeaderAuthorization))
	assert.Zero(t, authAPI.refreshCount())
}

func TestSessionService_Resume_RestoresStoredSession(t *testing.T) {
	authAPI := &fakeAuthAPI{refreshAccessToken: "access-resumed"}
	svc, store, registry, _ := newSessionFixture(t, authAPI)

	require.NoError(t, store.Set(context.Background(), service.StoreKeyRefreshToken, "refresh-stored"))

	require.NoError(t, svc.Resume(context.Background()))

	assert.Equal(t, entity.SessionAuthenticated, svc.Status())
	assert.Equal(t, "Bearer access-resumed", registry.header(service.HeaderAuthorization))
	assert.Equal(t, "refresh-stored", authAPI.lastRefreshToken)
}

func TestSessionService_Resume_NoStoredToken(t *testing.T) {
	authAPI := &fakeAuthAPI{}
	svc, _, registry, _ := newSessionFixture(t, authAPI)

	require.NoError(t, svc.Resume(context.Background()))

	assert.Equal(t, entity.SessionUnauthenticated, svc.Status())
	assert.Empty(t, registry.header(service.HeaderAuthorization))
	assert.Zero(t, authAPI.refreshCount())
}

func TestSessionService_Resume_RejectedTokenDiscarded(t *testing.T) {
	authAPI := &fakeAuthAPI{refreshErr: domainerrors.ErrRefreshExpired}
	svc, store, _, _ := newSessionFixture(t, authAPI)

	require.NoError(t, store.Set(context.Background(), service.StoreKeyRefreshToken, "refresh-dead"))

	require.NoError(t, svc.Resume(context.Background()))

	assert.Equal(t, entity.SessionUnauthenticated, svc.Status())
	assert.False(t, store.has(service.StoreKeyRefreshToken))
}

func TestSessionService_Profile_WithoutLogin(t *testing.T) {
	svc, _, _, _ := newSessionFixture(t, &fakeAuthAPI{})

	_, err := svc.Profile(context.Background())

	require.Error(t, err)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SESSION_REQUIRED", appErr.ErrorCode())
}
