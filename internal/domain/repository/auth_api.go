// Package repository defines the contracts for the moducare backend
// endpoints the client consumes. The backend itself is a black box; these
// interfaces are the only thing the rest of the code depends on.
package repository

import (
	"context"

	"moducare/internal/domain/entity"
)

// LoginCredentials carries the social-login proof to the login endpoint.
type LoginCredentials struct {
	Provider string `json:"provider"` // OAuth provider identifier, e.g. "naver".
	Token    string `json:"token"`    // Provider-issued token proving the user's identity.
}

// LoginResult is the login endpoint response. Field names follow the
// backend's JSON contract.
type LoginResult struct {
	AccessToken  string `json:"jwtAccessToken"`
	RefreshToken string `json:"refreshToken"`
	Name         string `json:"name"`
	Birth        string `json:"birth"`
	Email        string `json:"email"`
}

// Profile assembles the profile fields of the login response.
func (r *LoginResult) Profile() entity.UserProfile {
	return entity.UserProfile{
		Name:      r.Name,
		BirthDate: r.Birth,
		Email:     r.Email,
	}
}

// AuthAPI is the authentication endpoint set.
type AuthAPI interface {
	// Login exchanges credentials for tokens and profile fields.
	// Fails with domainerrors.ErrInvalidCredentials when the endpoint
	// rejects the credentials and ErrAuthNetworkFailure on transport
	// failure; neither is retried here.
	Login(ctx context.Context, creds LoginCredentials) (*LoginResult, error)

	// Refresh exchanges the stored refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)

	// Logout revokes the session server-side. Fire-and-forget.
	Logout(ctx context.Context) error

	// DeleteMember deletes the account server-side. Fire-and-forget.
	DeleteMember(ctx context.Context) error
}
