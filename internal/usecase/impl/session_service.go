// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"moducare/config"
	"moducare/internal/domain/entity"
	domainerrors "moducare/internal/domain/errors"
	"moducare/internal/domain/repository"
	"moducare/internal/domain/service"
	"moducare/internal/usecase"
	"moducare/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// minRefreshDelay is the floor for a scheduled tick so a nearly-expired
// token cannot spin the scheduler.
const minRefreshDelay = time.Minute

// sessionService implements the SessionUsecase interface. It is the only
// writer of the session state machine; the generation counter lets it
// recognize that a login or logout happened underneath an in-flight refresh
// and discard the stale result.
type sessionService struct {
	authAPI  repository.AuthAPI
	store    service.SecureStore
	registry service.HeaderRegistry
	cache    service.DataCache
	logger   *slog.Logger

	refreshInterval time.Duration
	refreshMargin   time.Duration

	mu         sync.Mutex
	session    entity.Session
	generation uint64
	timer      *time.Timer
}

// SessionServiceParams holds dependencies for sessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In
	fx.Lifecycle

	AuthAPI  repository.AuthAPI
	Store    service.SecureStore
	Registry service.HeaderRegistry
	Cache    service.DataCache
	Config   *config.Config
	Logger   *slog.Logger
}

// NewSessionService is the constructor for sessionService. The session
// starts Unauthenticated; a stored refresh token is resumed on start and the
// refresh timer is stopped on shutdown.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	srv := &sessionService{
		authAPI:         params.AuthAPI,
		store:           params.Store,
		registry:        params.Registry,
		cache:           params.Cache,
		logger:          params.Logger,
		refreshInterval: params.Config.Auth.RefreshInterval,
		refreshMargin:   params.Config.Auth.RefreshMargin,
	}

	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return srv.Resume(ctx)
		},
		OnStop: func(context.Context) error {
			srv.shutdown()

			return nil
		},
	})

	return srv
}

// Login authenticates against the login endpoint and establishes the session.
func (srv *sessionService) Login(ctx context.Context, input *usecase.LoginInput) (entity.Session, error) {
	srv.logger.Info("logging in", slog.String("provider", input.Provider))

	result, err := srv.authAPI.Login(ctx, repository.LoginCredentials{
		Provider: input.Provider,
		Token:    input.Token,
	})
	if err != nil {
		srv.logger.Warn("login failed", slog.Any("error", err))

		return entity.Session{}, err
	}

	if err := srv.store.Set(ctx, service.StoreKeyRefreshToken, result.RefreshToken); err != nil {
		return entity.Session{}, errors.Wrap(err, "persist refresh token")
	}
	if err := srv.store.Set(ctx, service.StoreKeyProfile, result.Profile()); err != nil {
		return entity.Session{}, errors.Wrap(err, "persist profile")
	}

	srv.mu.Lock()
	srv.generation++
	srv.session = entity.Session{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		Status:       entity.SessionAuthenticated,
	}
	srv.registry.SetHeader(service.HeaderAuthorization, "Bearer "+result.AccessToken)
	srv.armLocked(result.AccessToken)
	session := srv.session
	srv.mu.Unlock()

	srv.cache.Invalidate(service.CacheKeyAuthSession)
	srv.logger.Info("login succeeded", slog.String("status", session.Status.String()))

	return session, nil
}

// Resume restores a session from a stored refresh token. Called once at
// process start; a missing token leaves the session Unauthenticated.
func (srv *sessionService) Resume(ctx context.Context) error {
	var refreshToken string
	found, err := srv.store.Get(ctx, service.StoreKeyRefreshToken, &refreshToken)
	if err != nil {
		return errors.Wrap(err, "read stored refresh token")
	}
	if !found || refreshToken == "" {
		return nil
	}

	srv.mu.Lock()
	srv.generation++
	generation := srv.generation
	srv.session = entity.Session{
		RefreshToken: refreshToken,
		Status:       entity.SessionRefreshing,
	}
	srv.mu.Unlock()

	accessToken, err := srv.authAPI.Refresh(ctx, refreshToken)

	srv.mu.Lock()
	if srv.generation != generation {
		srv.mu.Unlock()

		return nil
	}
	if err != nil {
		srv.session = entity.Session{Status: entity.SessionUnauthenticated}
		srv.mu.Unlock()

		srv.logger.Warn("session resume failed, discarding stored token", slog.Any("error", err))
		if removeErr := srv.store.Remove(ctx, service.StoreKeyRefreshToken); removeErr != nil {
			srv.logger.Warn("failed to remove stored refresh token", slog.Any("error", removeErr))
		}

		return nil
	}

	srv.session.AccessToken = accessToken
	srv.session.Status = entity.SessionAuthenticated
	srv.registry.SetHeader(service.HeaderAuthorization, "Bearer "+accessToken)
	srv.armLocked(accessToken)
	srv.mu.Unlock()

	srv.cache.Invalidate(service.CacheKeyAuthSession)
	srv.logger.Info("session resumed from stored refresh token")

	return nil
}

// Logout revokes the session server-side and unconditionally clears local
// state. A failed server call is logged, never propagated: the client must
// always be able to log out.
func (srv *sessionService) Logout(ctx context.Context) error {
	if err := srv.authAPI.Logout(ctx); err != nil {
		srv.logger.Warn("server-side logout failed, clearing local session anyway", slog.Any("error", err))
	}

	srv.teardown(ctx)
	srv.logger.Info("logged out")

	return nil
}

// DeleteAccount deletes the account server-side and tears down like Logout.
func (srv *sessionService) DeleteAccount(ctx context.Context) error {
	if err := srv.authAPI.DeleteMember(ctx); err != nil {
		srv.logger.Warn("server-side account deletion failed, clearing local session anyway", slog.Any("error", err))
	}

	srv.teardown(ctx)
	srv.logger.Info("account deleted")

	return nil
}

// Status reports the current session state.
func (srv *sessionService) Status() entity.SessionStatus {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.session.Status
}

// Profile returns the profile captured at login.
func (srv *sessionService) Profile(ctx context.Context) (*entity.UserProfile, error) {
	var profile entity.UserProfile
	found, err := srv.store.Get(ctx, service.StoreKeyProfile, &profile)
	if err != nil {
		return nil, errors.Wrap(err, "read stored profile")
	}
	if !found {
		return nil, domainerrors.ErrSessionRequired.WrapMessage("no stored profile")
	}

	return &profile, nil
}

// scheduledRefresh is the periodic silent tick. It exchanges the stored
// refresh token for a new access token. A failure is not surfaced
// synchronously: the session transitions to Expired and the next
// user-initiated action observes it.
func (srv *sessionService) scheduledRefresh(generation uint64) {
	srv.mu.Lock()
	if srv.generation != generation || srv.session.Status != entity.SessionAuthenticated {
		srv.mu.Unlock()

		return
	}
	srv.session.Status = entity.SessionRefreshing
	refreshToken := srv.session.RefreshToken
	srv.mu.Unlock()

	accessToken, err := srv.authAPI.Refresh(context.Background(), refreshToken)

	srv.mu.Lock()
	if srv.generation != generation {
		// A login or logout happened while the exchange was in flight; its
		// state wins and this result is discarded.
		srv.mu.Unlock()

		return
	}

	if err != nil {
		srv.session = entity.Session{Status: entity.SessionExpired}
		srv.registry.RemoveHeader(service.HeaderAuthorization)
		srv.mu.Unlock()

		srv.logger.Warn("scheduled refresh failed, session expired", slog.Any("error", err))
		if removeErr := srv.store.Remove(context.Background(), service.StoreKeyRefreshToken); removeErr != nil {
			srv.logger.Warn("failed to remove stored refresh token", slog.Any("error", removeErr))
		}
		srv.cache.Invalidate(service.CacheKeyAuthSession)

		return
	}

	srv.session.AccessToken = accessToken
	srv.session.Status = entity.SessionAuthenticated
	srv.registry.SetHeader(service.HeaderAuthorization, "Bearer "+accessToken)
	srv.armLocked(accessToken)
	srv.mu.Unlock()

	srv.logger.Debug("scheduled refresh succeeded")
}

// teardown clears all local session state: timer, state machine, header,
// stored credentials and profile.
func (srv *sessionService) teardown(ctx context.Context) {
	srv.mu.Lock()
	srv.generation++
	if srv.timer != nil {
		srv.timer.Stop()
		srv.timer = nil
	}
	srv.session = entity.Session{Status: entity.SessionUnauthenticated}
	srv.registry.RemoveHeader(service.HeaderAuthorization)
	srv.mu.Unlock()

	if err := srv.store.Remove(ctx, service.StoreKeyRefreshToken); err != nil {
		srv.logger.Warn("failed to remove stored refresh token", slog.Any("error", err))
	}
	if err := srv.store.Remove(ctx, service.StoreKeyProfile); err != nil {
		srv.logger.Warn("failed to remove stored profile", slog.Any("error", err))
	}

	srv.cache.Invalidate(service.CacheKeyAuthSession)
}

// armLocked schedules the next refresh tick. Callers must hold srv.mu.
// The fixed interval is clamped to the access token's exp claim minus the
// configured margin when the token is a decodable JWT, so the schedule
// tracks the backend's real token lifetime.
func (srv *sessionService) armLocked(accessToken string) {
	delay := srv.refreshInterval
	if expiry, ok := tokenExpiry(accessToken); ok {
		untilExpiry := time.Until(expiry) - srv.refreshMargin
		if untilExpiry < delay {
			delay = untilExpiry
		}
	}
	if delay < minRefreshDelay {
		delay = minRefreshDelay
	}

	if srv.timer != nil {
		srv.timer.Stop()
	}
	generation := srv.generation
	srv.timer = time.AfterFunc(delay, func() {
		srv.scheduledRefresh(generation)
	})
	srv.logger.Debug("next refresh scheduled", slog.String("in", util.FormatDuration(delay)))
}

// shutdown stops the refresh timer without touching stored credentials.
func (srv *sessionService) shutdown() {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.generation++
	if srv.timer != nil {
		srv.timer.Stop()
		srv.timer = nil
	}
}

// tokenExpiry extracts the exp claim from a JWT without verifying it; the
// backend is the verifier, the client only schedules around it.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	expiry, err := claims.GetExpirationTime()
	if err != nil || expiry == nil {
		return time.Time{}, false
	}

	return expiry.Time, true
}
