package transport

import (
	"context"
	"net/http"

	domainerrors "moducare/internal/domain/errors"
	"moducare/internal/domain/repository"
	"moducare/internal/domain/service"

	"github.com/pkg/errors"
)

// authAPI implements repository.AuthAPI against the member endpoints.
type authAPI struct {
	client *Client
}

// NewAuthAPI creates the authentication endpoint set.
func NewAuthAPI(client *Client) repository.AuthAPI {
	return &authAPI{client: client}
}

// Login exchanges credentials for tokens and profile fields.
func (a *authAPI) Login(ctx context.Context, creds repository.LoginCredentials) (*repository.LoginResult, error) {
	var result repository.LoginResult
	if err := a.client.do(ctx, http.MethodPost, "/members/login", creds, &result, nil); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			if statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusBadRequest {
				return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login rejected")
			}

			return nil, domainerrors.ErrAuthNetworkFailure.WithDetails(statusErr.Error())
		}

		return nil, domainerrors.ErrAuthNetworkFailure.WrapMessage(err.Error())
	}

	return &result, nil
}

// Refresh exchanges the refresh token for a new access token. The refresh
// token rides in the Authorization header for this one request, overriding
// whatever access token the registry currently holds.
func (a *authAPI) Refresh(ctx context.Context, refreshToken string) (string, error) {
	override := map[string]string{
		service.HeaderAuthorization: "Bearer " + refreshToken,
	}

	var result struct {
		AccessToken string `json:"accessToken"`
	}
	if err := a.client.do(ctx, http.MethodPost, "/members/refresh", nil, &result, override); err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
			return "", domainerrors.ErrRefreshExpired.WrapMessage("refresh token rejected")
		}

		return "", domainerrors.ErrAuthNetworkFailure.WrapMessage(err.Error())
	}

	return result.AccessToken, nil
}

// Logout revokes the session server-side.
func (a *authAPI) Logout(ctx context.Context) error {
	return a.client.do(ctx, http.MethodPost, "/members/logout", nil, nil, nil)
}

// DeleteMember deletes the account server-side.
func (a *authAPI) DeleteMember(ctx context.Context) error {
	return a.client.do(ctx, http.MethodDelete, "/members", nil, nil, nil)
}
